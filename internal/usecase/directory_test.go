package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imobflow/crm-api/internal/entity"
	"github.com/imobflow/crm-api/internal/usecase"
)

func TestDirectoryGroupings(t *testing.T) {
	ctx := context.Background()

	store := newFakeLeadStore(
		lead("1", "Ana", "ana@example.com", "", "B1"),
		lead("2", "Bruno", "bruno@example.com", "", "B1"),
		lead("3", "Carla", "carla@example.com", "", "B2"),
		lead("4", "Davi", "davi@example.com", "", ""),
	)

	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{
		activeBroker("B1", "Joana Prado"),
		activeBroker("B2", "Marcos Reis"),
		activeBroker("B3", "Sem Carteira"),
	}, nil)

	dir := usecase.NewLeadDirectory(store, mockBrokers)
	assert.NoError(t, dir.Refresh(ctx))

	assert.Len(t, dir.Leads(), 4)
	assert.Len(t, dir.Brokers(), 3)

	unassigned := dir.Unassigned()
	assert.Len(t, unassigned, 1)
	assert.Equal(t, "4", unassigned[0].ID)

	byBroker := dir.ByBroker()
	assert.Len(t, byBroker["B1"], 2)
	assert.Len(t, byBroker["B2"], 1)

	byStage := dir.ByStage()
	assert.Len(t, byStage[entity.StageNew], 4)
}

// Só corretor com lead na carteira aparece como origem possível.
func TestDirectorySourceBrokersFiltersEmptyPortfolios(t *testing.T) {
	ctx := context.Background()

	store := newFakeLeadStore(
		lead("1", "Ana", "ana@example.com", "", "B1"),
	)

	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{
		activeBroker("B1", "Joana Prado"),
		activeBroker("B2", "Sem Carteira"),
	}, nil)

	dir := usecase.NewLeadDirectory(store, mockBrokers)
	assert.NoError(t, dir.Refresh(ctx))

	sources := dir.SourceBrokers()
	assert.Len(t, sources, 1)
	assert.Equal(t, "B1", sources[0].ID)
}

// Depois de uma escrita em massa o refresh recarrega tudo e o snapshot
// reflete o novo estado.
func TestDirectoryRefreshReflectsBulkWrite(t *testing.T) {
	ctx := context.Background()

	store := newFakeLeadStore(
		lead("1", "Ana", "ana@example.com", "", ""),
	)

	mockBrokers := new(MockBrokerRepository)
	mockBrokers.On("ListByRole", ctx, entity.RoleBroker).Return([]*entity.Broker{activeBroker("B1", "Joana Prado")}, nil)

	dir := usecase.NewLeadDirectory(store, mockBrokers)
	assert.NoError(t, dir.Refresh(ctx))
	assert.Len(t, dir.Unassigned(), 1)

	assert.NoError(t, store.UpdateBrokerBatch(ctx, []string{"1"}, "B1"))
	assert.NoError(t, dir.Refresh(ctx))

	assert.Empty(t, dir.Unassigned())
	assert.Len(t, dir.ByBroker()["B1"], 1)
}
