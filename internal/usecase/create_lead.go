package usecase

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/imobflow/crm-api/internal/entity"
	"github.com/imobflow/crm-api/internal/infra/queue"
)

type CreateLeadInput struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone"`
	Stage               string `json:"stage,omitempty"`
	Source              string `json:"source,omitempty"`
	Notes               string `json:"notes,omitempty"`
	EstimatedValueCents int64  `json:"estimated_value_cents,omitempty"`
	PropertyOfInterest  string `json:"property_of_interest,omitempty"`

	// BrokerID explícito sempre vence o sorteio automático.
	BrokerID string `json:"broker_id,omitempty"`

	CreatedBy string `json:"-"`
}

type CreateLeadOutput struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stage    string `json:"stage"`
	BrokerID string `json:"broker_id,omitempty"`
	Msg      string `json:"msg"`
}

// PickDefaultBroker resolve o corretor de um lead criado sem escolha
// explícita: sorteio uniforme entre os corretores ativos, um sorteio
// independente por chamada — não é round-robin nem balanceamento de
// carga. Lista vazia cria o lead sem corretor.
func PickDefaultBroker(brokers []*entity.Broker, explicitChoice string, rng *rand.Rand) string {
	if explicitChoice != "" {
		return explicitChoice
	}

	var eligible []*entity.Broker
	for _, b := range brokers {
		if b.EligibleForAssignment() {
			eligible = append(eligible, b)
		}
	}
	if len(eligible) == 0 {
		return ""
	}
	return eligible[rng.Intn(len(eligible))].ID
}

type CreateLeadUseCase struct {
	Repo       entity.LeadRepositoryInterface
	BrokerRepo entity.BrokerRepositoryInterface
	RecordRepo entity.AssignmentRecordRepositoryInterface
	Queue      QueueProducerInterface

	// Rand é injetável para os testes; nil usa a fonte padrão.
	Rand *rand.Rand
}

func NewCreateLeadUseCase(
	repo entity.LeadRepositoryInterface,
	brokerRepo entity.BrokerRepositoryInterface,
	recordRepo entity.AssignmentRecordRepositoryInterface,
	producer QueueProducerInterface,
) *CreateLeadUseCase {
	return &CreateLeadUseCase{
		Repo:       repo,
		BrokerRepo: brokerRepo,
		RecordRepo: recordRepo,
		Queue:      producer,
		Rand:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (uc *CreateLeadUseCase) rng() *rand.Rand {
	if uc.Rand == nil {
		uc.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return uc.Rand
}

func (uc *CreateLeadUseCase) Execute(ctx context.Context, input CreateLeadInput) (*CreateLeadOutput, error) {
	if verrs := ValidateCreateLeadInput(input); len(verrs) > 0 {
		return nil, &DomainError{
			Code:    "VALIDATION_ERROR",
			Message: joinValidationErrors(verrs),
		}
	}

	lead, err := entity.NewLead(input.Name, input.Email, input.Phone)
	if err != nil {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: err.Error()}
	}
	if input.Stage != "" {
		lead.Stage = input.Stage
	}
	lead.Source = input.Source
	lead.Notes = input.Notes
	lead.EstimatedValueCents = input.EstimatedValueCents
	lead.PropertyOfInterest = input.PropertyOfInterest

	brokers, err := uc.BrokerRepo.ListByRole(ctx, entity.RoleBroker)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao listar corretores: " + err.Error(),
		}
	}

	var broker *entity.Broker
	lead.BrokerID = PickDefaultBroker(brokers, input.BrokerID, uc.rng())
	for _, b := range brokers {
		if b.ID == lead.BrokerID {
			broker = b
			break
		}
	}

	mode := string(ModeLink)
	if input.BrokerID == "" {
		mode = "AUTO" // atribuição sorteada, sem autor
	}

	txn := NewTransaction()
	txn.AddOperation("create_lead", func(ctx context.Context) error {
		return uc.Repo.Create(ctx, lead)
	})
	txn.AddCompensation("delete_lead", func(ctx context.Context) error {
		return uc.Repo.Delete(ctx, lead.ID)
	})
	if lead.BrokerID != "" && uc.RecordRepo != nil {
		txn.AddOperation("record_assignment", func(ctx context.Context) error {
			return uc.RecordRepo.Create(ctx, entity.NewAssignmentRecord(lead.ID, lead.BrokerID, mode, input.CreatedBy))
		})
	}

	if err := txn.Execute(ctx); err != nil {
		if errors.Is(err, entity.ErrDuplicateLead) {
			return nil, &DomainError{Code: "DUPLICATE_LEAD", Message: entity.ErrDuplicateLead.Error()}
		}
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao persistir o lead: " + err.Error(),
		}
	}

	// Notificação fora da transação: o lead já está salvo.
	if uc.Queue != nil && broker != nil {
		payload := queue.AssignmentPayload{
			Mode:        mode,
			BrokerID:    broker.ID,
			BrokerName:  broker.FullName,
			BrokerEmail: broker.Email,
			BrokerPhone: broker.Phone,
			LeadIDs:     []string{lead.ID},
			LeadNames:   []string{lead.Name},
			RequestedBy: input.CreatedBy,
			Origin:      "LEAD_CREATED",
		}
		if err := uc.Queue.PublishAssignment(ctx, payload); err != nil {
			log.Printf("⚠️ Lead criado, mas falha ao publicar notificação: %v", err)
		}
	}

	return &CreateLeadOutput{
		ID:       lead.ID,
		Name:     lead.Name,
		Stage:    lead.Stage,
		BrokerID: lead.BrokerID,
		Msg:      "lead criado com sucesso",
	}, nil
}
