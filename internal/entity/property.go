package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const (
	PropertyAvailable = "AVAILABLE"
	PropertyReserved  = "RESERVED"
	PropertySold      = "SOLD"
)

var ErrPropertyNotFound = errors.New("imóvel não encontrado")

// Property é um anúncio da carteira de imóveis.
type Property struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Kind       string    `json:"kind"` // APARTAMENTO, CASA, TERRENO, COMERCIAL
	PriceCents int64     `json:"price_cents"`
	District   string    `json:"district,omitempty"`
	City       string    `json:"city"`
	Bedrooms   int       `json:"bedrooms,omitempty"`
	AreaM2     float64   `json:"area_m2,omitempty"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewProperty(title, kind, city string, priceCents int64) (*Property, error) {
	if title == "" {
		return nil, errors.New("title é obrigatório")
	}
	if city == "" {
		return nil, errors.New("city é obrigatório")
	}
	if priceCents <= 0 {
		return nil, errors.New("price_cents deve ser positivo")
	}
	now := time.Now()
	return &Property{
		ID:         uuid.New().String(),
		Title:      title,
		Kind:       kind,
		City:       city,
		PriceCents: priceCents,
		Status:     PropertyAvailable,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

type PropertyFilter struct {
	City   string
	Status string
}

type PropertyRepositoryInterface interface {
	Create(ctx context.Context, p *Property) error
	List(ctx context.Context, filter PropertyFilter) ([]*Property, error)
}
