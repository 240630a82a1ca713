package handlers

import (
	"net/http"

	"github.com/imobflow/crm-api/internal/entity"
)

type BrokerHandler struct {
	BrokerRepo entity.BrokerRepositoryInterface
}

func NewBrokerHandler(repo entity.BrokerRepositoryInterface) *BrokerHandler {
	return &BrokerHandler{BrokerRepo: repo}
}

// HandleList (GET /brokers) — corretores ativos, os alvos possíveis de
// vincular/transferir.
func (h *BrokerHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	brokers, err := h.BrokerRepo.ListByRole(r.Context(), entity.RoleBroker)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao listar corretores")
		return
	}
	if brokers == nil {
		brokers = []*entity.Broker{}
	}
	writeJSON(w, http.StatusOK, brokers)
}

// HandleListSources (GET /brokers/sources) — só corretores com carteira
// não-vazia; são as opções de origem de desvincular/transferir.
func (h *BrokerHandler) HandleListSources(w http.ResponseWriter, r *http.Request) {
	brokers, err := h.BrokerRepo.ListWithLeads(r.Context())
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao listar corretores")
		return
	}
	if brokers == nil {
		brokers = []*entity.Broker{}
	}
	writeJSON(w, http.StatusOK, brokers)
}
