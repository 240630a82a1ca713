package usecase

import (
	"context"
	"sync"

	"github.com/imobflow/crm-api/internal/entity"
)

// LeadDirectory é o snapshot em memória de leads e corretores visíveis na
// sessão, com os agrupamentos derivados que a UI consome (por corretor,
// por estágio, sem corretor). Depois de uma escrita em massa bem-sucedida
// o snapshot é recarregado por inteiro — nada de patch incremental.
type LeadDirectory struct {
	mu         sync.RWMutex
	leadRepo   entity.LeadRepositoryInterface
	brokerRepo entity.BrokerRepositoryInterface

	leads   []*entity.Lead
	brokers []*entity.Broker
}

func NewLeadDirectory(leadRepo entity.LeadRepositoryInterface, brokerRepo entity.BrokerRepositoryInterface) *LeadDirectory {
	return &LeadDirectory{
		leadRepo:   leadRepo,
		brokerRepo: brokerRepo,
	}
}

// Refresh recarrega leads e corretores do banco. Só corretores entram na
// lista de destinos possíveis.
func (d *LeadDirectory) Refresh(ctx context.Context) error {
	leads, err := d.leadRepo.List(ctx, entity.LeadFilter{})
	if err != nil {
		return err
	}

	brokers, err := d.brokerRepo.ListByRole(ctx, entity.RoleBroker)
	if err != nil {
		return err
	}

	d.mu.Lock()
	d.leads = leads
	d.brokers = brokers
	d.mu.Unlock()

	return nil
}

func (d *LeadDirectory) Leads() []*entity.Lead {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*entity.Lead, len(d.leads))
	copy(out, d.leads)
	return out
}

func (d *LeadDirectory) Brokers() []*entity.Broker {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*entity.Broker, len(d.brokers))
	copy(out, d.brokers)
	return out
}

func (d *LeadDirectory) Unassigned() []*entity.Lead {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var out []*entity.Lead
	for _, l := range d.leads {
		if !l.Assigned() {
			out = append(out, l)
		}
	}
	return out
}

func (d *LeadDirectory) ByBroker() map[string][]*entity.Lead {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]*entity.Lead)
	for _, l := range d.leads {
		if l.Assigned() {
			out[l.BrokerID] = append(out[l.BrokerID], l)
		}
	}
	return out
}

func (d *LeadDirectory) ByStage() map[string][]*entity.Lead {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string][]*entity.Lead)
	for _, l := range d.leads {
		out[l.Stage] = append(out[l.Stage], l)
	}
	return out
}

// SourceBrokers devolve os corretores com pelo menos um lead na carteira.
// É um filtro de apresentação para as opções de origem; a validação da
// operação em massa não reconfere isso.
func (d *LeadDirectory) SourceBrokers() []*entity.Broker {
	counts := make(map[string]int)
	d.mu.RLock()
	for _, l := range d.leads {
		if l.Assigned() {
			counts[l.BrokerID]++
		}
	}
	brokers := make([]*entity.Broker, len(d.brokers))
	copy(brokers, d.brokers)
	d.mu.RUnlock()

	var out []*entity.Broker
	for _, b := range brokers {
		if counts[b.ID] > 0 {
			out = append(out, b)
		}
	}
	return out
}
