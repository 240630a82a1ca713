package usecase

import (
	"context"

	"github.com/imobflow/crm-api/internal/infra/queue"
)

type QueueProducerInterface interface {
	PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error
}
