package usecase_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/imobflow/crm-api/internal/entity"
	"github.com/imobflow/crm-api/internal/infra/queue"
)

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Create(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLeadRepository) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdateBrokerBatch(ctx context.Context, leadIDs []string, brokerID string) error {
	args := m.Called(ctx, leadIDs, brokerID)
	return args.Error(0)
}

// MockBrokerRepository
type MockBrokerRepository struct {
	mock.Mock
}

func (m *MockBrokerRepository) ListByRole(ctx context.Context, role string) ([]*entity.Broker, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Broker), args.Error(1)
}

func (m *MockBrokerRepository) FindByID(ctx context.Context, id string) (*entity.Broker, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Broker), args.Error(1)
}

func (m *MockBrokerRepository) ListWithLeads(ctx context.Context) ([]*entity.Broker, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Broker), args.Error(1)
}

// MockRecordRepository
type MockRecordRepository struct {
	mock.Mock
}

func (m *MockRecordRepository) Create(ctx context.Context, rec *entity.AssignmentRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *MockRecordRepository) CreateBatch(ctx context.Context, recs []*entity.AssignmentRecord) error {
	args := m.Called(ctx, recs)
	return args.Error(0)
}

func (m *MockRecordRepository) ListByLeadID(ctx context.Context, leadID string) ([]*entity.AssignmentRecord, error) {
	args := m.Called(ctx, leadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.AssignmentRecord), args.Error(1)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishAssignment(ctx context.Context, payload queue.AssignmentPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// fakeLeadStore é um repositório em memória para os cenários fim-a-fim:
// aplica de verdade o UpdateBrokerBatch sobre o estado.
type fakeLeadStore struct {
	mu    sync.Mutex
	leads map[string]*entity.Lead
	order []string
}

func newFakeLeadStore(leads ...*entity.Lead) *fakeLeadStore {
	s := &fakeLeadStore{leads: make(map[string]*entity.Lead)}
	for _, l := range leads {
		s.leads[l.ID] = l
		s.order = append(s.order, l.ID)
	}
	return s
}

func (s *fakeLeadStore) Create(ctx context.Context, lead *entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.leads[lead.ID] = lead
	s.order = append(s.order, lead.ID)
	return nil
}

func (s *fakeLeadStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.leads, id)
	return nil
}

func (s *fakeLeadStore) List(ctx context.Context, filter entity.LeadFilter) ([]*entity.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entity.Lead
	for _, id := range s.order {
		if l, ok := s.leads[id]; ok {
			out = append(out, l)
		}
	}
	return out, nil
}

func (s *fakeLeadStore) UpdateBrokerBatch(ctx context.Context, leadIDs []string, brokerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range leadIDs {
		if l, ok := s.leads[id]; ok {
			l.BrokerID = brokerID
		}
	}
	return nil
}

func (s *fakeLeadStore) get(id string) *entity.Lead {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.leads[id]
}
