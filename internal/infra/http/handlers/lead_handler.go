package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/imobflow/crm-api/internal/entity"
	"github.com/imobflow/crm-api/internal/infra/http/middleware"
	"github.com/imobflow/crm-api/internal/usecase"
)

type LeadHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
	LeadRepo     entity.LeadRepositoryInterface
}

func NewLeadHandler(uc *usecase.CreateLeadUseCase, leadRepo entity.LeadRepositoryInterface) *LeadHandler {
	return &LeadHandler{CreateLeadUC: uc, LeadRepo: leadRepo}
}

// HandleCreate (POST /leads) — cadastro manual. Sem broker_id explícito o
// use case sorteia um corretor.
func (h *LeadHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	input.CreatedBy = r.Header.Get("X-User-Id")

	output, err := h.CreateLeadUC.Execute(r.Context(), input)
	if err != nil {
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordLeadCreated("manual")
	writeJSON(w, http.StatusCreated, output)
}

// HandleList (GET /leads) — listagem com filtros de corretor, estágio e
// busca livre.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.LeadFilter{
		BrokerID:   q.Get("broker"),
		Stage:      q.Get("stage"),
		Search:     q.Get("q"),
		Unassigned: q.Get("unassigned") == "true",
	}

	leads, err := h.LeadRepo.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao listar leads")
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}

	writeJSON(w, http.StatusOK, leads)
}
