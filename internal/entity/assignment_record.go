package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AssignmentRecord é o histórico de (re)atribuições de um lead. BrokerID
// vazio registra uma desvinculação; AssignedBy vazio registra atribuição
// automática (sorteio na criação).
type AssignmentRecord struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	BrokerID   string    `json:"broker_id,omitempty"`
	Mode       string    `json:"mode"` // LINK, UNLINK, TRANSFER, AUTO
	AssignedBy string    `json:"assigned_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAssignmentRecord(leadID, brokerID, mode, assignedBy string) *AssignmentRecord {
	return &AssignmentRecord{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		BrokerID:   brokerID,
		Mode:       mode,
		AssignedBy: assignedBy,
		CreatedAt:  time.Now(),
	}
}

type AssignmentRecordRepositoryInterface interface {
	Create(ctx context.Context, rec *AssignmentRecord) error
	CreateBatch(ctx context.Context, recs []*AssignmentRecord) error
	ListByLeadID(ctx context.Context, leadID string) ([]*AssignmentRecord, error)
}
