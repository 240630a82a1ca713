package entity

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Estágios do funil de vendas. A ordem aqui é a ordem das colunas do kanban.
const (
	StageNew            = "NEW"
	StageQualified      = "QUALIFIED"
	StageVisitScheduled = "VISIT_SCHEDULED"
	StageNegotiating    = "NEGOTIATING"
	StageDocumentation  = "DOCUMENTATION"
	StageContract       = "CONTRACT"
	StageClosing        = "CLOSING"
)

var Stages = []string{
	StageNew,
	StageQualified,
	StageVisitScheduled,
	StageNegotiating,
	StageDocumentation,
	StageContract,
	StageClosing,
}

func IsValidStage(stage string) bool {
	for _, s := range Stages {
		if s == stage {
			return true
		}
	}
	return false
}

var (
	ErrLeadNotFound    = errors.New("lead não encontrado")
	ErrDuplicateLead   = errors.New("já existe um lead com este email")
	ErrContactRequired = errors.New("informe ao menos email ou telefone")
)

type Lead struct {
	ID                  string     `json:"id"`
	Name                string     `json:"name"`
	Email               string     `json:"email,omitempty"`
	Phone               string     `json:"phone,omitempty"`
	Stage               string     `json:"stage"`
	BrokerID            string     `json:"broker_id,omitempty"` // vazio = sem corretor
	Source              string     `json:"source,omitempty"`
	Notes               string     `json:"notes,omitempty"`
	EstimatedValueCents int64      `json:"estimated_value_cents,omitempty"`
	ContactDate         *time.Time `json:"contact_date,omitempty"`
	PropertyOfInterest  string     `json:"property_of_interest,omitempty"`
	Stale               bool       `json:"stale,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// NewLead cria um lead no estágio inicial. Email e telefone são opcionais
// individualmente, mas pelo menos um dos dois precisa existir.
func NewLead(name, email, phone string) (*Lead, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name é obrigatório")
	}
	if strings.TrimSpace(email) == "" && strings.TrimSpace(phone) == "" {
		return nil, ErrContactRequired
	}
	now := time.Now()
	return &Lead{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		Phone:     phone,
		Stage:     StageNew,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (l *Lead) Assigned() bool {
	return l.BrokerID != ""
}

// MatchesSearch faz a busca case-insensitive por substring em nome, email
// e telefone. Termo vazio casa com tudo.
func (l *Lead) MatchesSearch(term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(l.Name), term) ||
		strings.Contains(strings.ToLower(l.Email), term) ||
		strings.Contains(strings.ToLower(l.Phone), term)
}

type LeadFilter struct {
	BrokerID   string
	Unassigned bool
	Stage      string
	Search     string
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter LeadFilter) ([]*Lead, error)

	// UpdateBrokerBatch grava o mesmo broker_id para todos os leads do
	// lote em um único comando. brokerID vazio limpa a atribuição.
	UpdateBrokerBatch(ctx context.Context, leadIDs []string, brokerID string) error
}
