package entity

import (
	"context"
	"errors"
	"time"
)

// Papéis de usuário. Só quem tem RoleBroker pode receber leads.
const (
	RoleBroker  = "BROKER"
	RoleManager = "MANAGER"
	RoleAdmin   = "ADMIN"
)

var ErrBrokerNotFound = errors.New("corretor não encontrado")

type Broker struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// EligibleForAssignment garante que nunca vinculamos lead a um usuário que
// não seja corretor ativo.
func (b *Broker) EligibleForAssignment() bool {
	return b.Active && b.Role == RoleBroker
}

type BrokerRepositoryInterface interface {
	ListByRole(ctx context.Context, role string) ([]*Broker, error)
	FindByID(ctx context.Context, id string) (*Broker, error)

	// ListWithLeads devolve só corretores com pelo menos um lead na
	// carteira. É o filtro das opções de origem de desvincular/transferir.
	ListWithLeads(ctx context.Context) ([]*Broker, error)
}
