package usecase_test

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/imobflow/crm-api/internal/entity"
	"github.com/imobflow/crm-api/internal/usecase"
)

func TestPickDefaultBrokerExplicitChoiceWins(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	brokers := []*entity.Broker{activeBroker("B1", "Ana"), activeBroker("B2", "Bia")}

	got := usecase.PickDefaultBroker(brokers, "B7", rng)

	assert.Equal(t, "B7", got)
}

func TestPickDefaultBrokerEmptyListReturnsUnassigned(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	got := usecase.PickDefaultBroker(nil, "", rng)

	assert.Equal(t, "", got)
}

func TestPickDefaultBrokerStaysWithinList(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	brokers := []*entity.Broker{
		activeBroker("B1", "Ana"),
		activeBroker("B2", "Bia"),
		activeBroker("B3", "Caio"),
	}
	valid := map[string]bool{"B1": true, "B2": true, "B3": true}

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		got := usecase.PickDefaultBroker(brokers, "", rng)
		assert.True(t, valid[got], "sorteou id fora da lista: %s", got)
		seen[got] = true
	}

	// Com 200 sorteios uniformes todo mundo aparece.
	assert.Len(t, seen, 3)
}

func TestPickDefaultBrokerSkipsNonEligible(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	inactive := &entity.Broker{ID: "B1", FullName: "Inativa", Role: entity.RoleBroker, Active: false}
	manager := &entity.Broker{ID: "B2", FullName: "Gerente", Role: entity.RoleManager, Active: true}
	brokers := []*entity.Broker{inactive, manager, activeBroker("B3", "Caio")}

	for i := 0; i < 50; i++ {
		assert.Equal(t, "B3", usecase.PickDefaultBroker(brokers, "", rng))
	}
}

func TestCreateLeadAssignsRandomBroker(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{activeBroker("B1", "Joana Prado")}, nil)
	mockRecords := new(MockRecordRepository)
	mockRecords.On("Create", ctx, mock.Anything).Return(nil)
	mockQueue := new(MockQueueProducer)
	mockQueue.On("PublishAssignment", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockBrokers, mockRecords, mockQueue)
	uc.Rand = rand.New(rand.NewSource(1))

	output, err := uc.Execute(ctx, usecase.CreateLeadInput{
		Name:  "Pedro Alves",
		Email: "pedro@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, "B1", output.BrokerID)
	assert.Equal(t, entity.StageNew, output.Stage)
	mockRecords.AssertCalled(t, "Create", ctx, mock.Anything)
	mockQueue.AssertCalled(t, "PublishAssignment", ctx, mock.Anything)
}

func TestCreateLeadWithoutBrokersCreatesUnassigned(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{}, nil)
	mockRecords := new(MockRecordRepository)
	mockQueue := new(MockQueueProducer)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockBrokers, mockRecords, mockQueue)

	output, err := uc.Execute(ctx, usecase.CreateLeadInput{
		Name:  "Pedro Alves",
		Phone: "(11) 98888-7777",
	})

	assert.NoError(t, err)
	assert.Equal(t, "", output.BrokerID)
	mockRecords.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mockQueue.AssertNotCalled(t, "PublishAssignment", mock.Anything, mock.Anything)
}

func TestCreateLeadRequiresEmailOrPhone(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockBrokers := new(MockBrokerRepository)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockBrokers, nil, nil)

	output, err := uc.Execute(ctx, usecase.CreateLeadInput{Name: "Sem Contato"})

	assert.Nil(t, output)
	assert.True(t, usecase.IsDomainError(err))
	mockLeads.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

// Se o registro de auditoria falhar, a compensação apaga o lead criado.
func TestCreateLeadCompensatesWhenAuditFails(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockLeads.On("Delete", ctx, mock.Anything).Return(nil)
	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{activeBroker("B1", "Joana Prado")}, nil)
	mockRecords := new(MockRecordRepository)
	mockRecords.On("Create", ctx, mock.Anything).Return(errors.New("disk full"))
	mockQueue := new(MockQueueProducer)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockBrokers, mockRecords, mockQueue)

	output, err := uc.Execute(ctx, usecase.CreateLeadInput{
		Name:  "Pedro Alves",
		Email: "pedro@example.com",
	})

	assert.Nil(t, output)
	assert.True(t, usecase.IsTechnicalError(err))
	mockLeads.AssertCalled(t, "Delete", ctx, mock.Anything)
	mockQueue.AssertNotCalled(t, "PublishAssignment", mock.Anything, mock.Anything)
}

func TestCreateLeadExplicitBrokerSkipsDraw(t *testing.T) {
	ctx := context.Background()

	mockLeads := new(MockLeadRepository)
	mockLeads.On("Create", ctx, mock.Anything).Return(nil)
	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{
		activeBroker("B1", "Joana Prado"),
		activeBroker("B2", "Marcos Reis"),
	}, nil)
	mockRecords := new(MockRecordRepository)
	mockRecords.On("Create", ctx, mock.Anything).Return(nil)
	mockQueue := new(MockQueueProducer)
	mockQueue.On("PublishAssignment", ctx, mock.Anything).Return(nil)

	uc := usecase.NewCreateLeadUseCase(mockLeads, mockBrokers, mockRecords, mockQueue)

	output, err := uc.Execute(ctx, usecase.CreateLeadInput{
		Name:     "Pedro Alves",
		Email:    "pedro@example.com",
		BrokerID: "B2",
	})

	assert.NoError(t, err)
	assert.Equal(t, "B2", output.BrokerID)
}
