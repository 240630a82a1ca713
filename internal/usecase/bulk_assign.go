package usecase

import (
	"context"
	"log"

	"github.com/imobflow/crm-api/internal/entity"
	"github.com/imobflow/crm-api/internal/infra/queue"
)

type BulkAssignInput struct {
	Mode           AssignmentMode `json:"mode"`
	LeadIDs        []string       `json:"lead_ids"`
	SourceBrokerID string         `json:"source_broker_id,omitempty"`
	TargetBrokerID string         `json:"target_broker_id,omitempty"`
	RequestedBy    string         `json:"-"`
}

type BulkAssignOutput struct {
	Success    bool   `json:"success"`
	Count      int    `json:"count"`
	AssignedTo string `json:"assigned_to,omitempty"` // vazio = desvinculados
	Msg        string `json:"msg"`
}

// BulkAssignUseCase é o executor da operação em massa: valida com o motor
// de atribuição, resolve o broker_id único do lote e grava tudo em UMA
// escrita lógica. O resultado é do lote inteiro — sucesso ou falha, sem
// resultado por lead e sem retry automático.
type BulkAssignUseCase struct {
	LeadRepo   entity.LeadRepositoryInterface
	BrokerRepo entity.BrokerRepositoryInterface
	RecordRepo entity.AssignmentRecordRepositoryInterface
	Queue      QueueProducerInterface
	Directory  *LeadDirectory
}

func NewBulkAssignUseCase(
	leadRepo entity.LeadRepositoryInterface,
	brokerRepo entity.BrokerRepositoryInterface,
	recordRepo entity.AssignmentRecordRepositoryInterface,
	producer QueueProducerInterface,
	directory *LeadDirectory,
) *BulkAssignUseCase {
	return &BulkAssignUseCase{
		LeadRepo:   leadRepo,
		BrokerRepo: brokerRepo,
		RecordRepo: recordRepo,
		Queue:      producer,
		Directory:  directory,
	}
}

func (uc *BulkAssignUseCase) Execute(ctx context.Context, input BulkAssignInput) (*BulkAssignOutput, error) {
	if res := Validate(input.Mode, input.LeadIDs, input.SourceBrokerID, input.TargetBrokerID); !res.Valid {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: res.Reason,
		}
	}

	newBrokerID := ResolveNewBrokerID(input.Mode, input.SourceBrokerID, input.TargetBrokerID)

	// Invariante: broker_id gravado sempre aponta para corretor ativo.
	var broker *entity.Broker
	if newBrokerID != "" {
		var err error
		broker, err = uc.BrokerRepo.FindByID(ctx, newBrokerID)
		if err != nil {
			return nil, &DomainError{
				Code:    "BROKER_NOT_FOUND",
				Message: "corretor de destino não existe: " + err.Error(),
			}
		}
		if !broker.EligibleForAssignment() {
			return nil, &DomainError{
				Code:    "BROKER_NOT_ELIGIBLE",
				Message: "usuário de destino não é um corretor ativo",
			}
		}
	}

	if err := uc.LeadRepo.UpdateBrokerBatch(ctx, input.LeadIDs, newBrokerID); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao atualizar os leads do lote: " + err.Error(),
		}
	}

	// Auditoria e notificação são best-effort: a escrita principal já foi.
	if uc.RecordRepo != nil {
		recs := make([]*entity.AssignmentRecord, 0, len(input.LeadIDs))
		for _, leadID := range input.LeadIDs {
			recs = append(recs, entity.NewAssignmentRecord(leadID, newBrokerID, string(input.Mode), input.RequestedBy))
		}
		if err := uc.RecordRepo.CreateBatch(ctx, recs); err != nil {
			log.Printf("⚠️ Falha ao registrar histórico de atribuição: %v", err)
		}
	}

	if uc.Queue != nil && broker != nil {
		payload := queue.AssignmentPayload{
			Mode:        string(input.Mode),
			BrokerID:    broker.ID,
			BrokerName:  broker.FullName,
			BrokerEmail: broker.Email,
			BrokerPhone: broker.Phone,
			LeadIDs:     input.LeadIDs,
			RequestedBy: input.RequestedBy,
			Origin:      "BULK_ASSIGN",
		}
		if err := uc.Queue.PublishAssignment(ctx, payload); err != nil {
			log.Printf("⚠️ Lote gravado, mas falha ao publicar notificação: %v", err)
		}
	}

	if uc.Directory != nil {
		if err := uc.Directory.Refresh(ctx); err != nil {
			log.Printf("⚠️ Falha ao recarregar diretório de leads: %v", err)
		}
	}

	msg := "leads desvinculados com sucesso"
	if newBrokerID != "" {
		msg = "leads atribuídos com sucesso"
	}

	return &BulkAssignOutput{
		Success:    true,
		Count:      len(input.LeadIDs),
		AssignedTo: newBrokerID,
		Msg:        msg,
	}, nil
}
