package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/imobflow/crm-api/internal/infra/http/middleware"
	"github.com/imobflow/crm-api/internal/usecase"
)

type AssignmentHandler struct {
	BulkAssignUC *usecase.BulkAssignUseCase
	Directory    *usecase.LeadDirectory
}

func NewAssignmentHandler(uc *usecase.BulkAssignUseCase, directory *usecase.LeadDirectory) *AssignmentHandler {
	return &AssignmentHandler{BulkAssignUC: uc, Directory: directory}
}

// HandleBulkAssign (POST /assignments/bulk) — a operação em massa:
// vincular, desvincular ou transferir.
func (h *AssignmentHandler) HandleBulkAssign(w http.ResponseWriter, r *http.Request) {
	var input usecase.BulkAssignInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	input.RequestedBy = r.Header.Get("X-User-Id")

	output, err := h.BulkAssignUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordBulkAssignment(string(input.Mode), "error")
		writeUseCaseError(w, err)
		return
	}

	middleware.RecordBulkAssignment(string(input.Mode), "success")
	writeJSON(w, http.StatusOK, output)
}

// HandleCandidates (GET /leads/candidates) — o conjunto de leads elegíveis
// para o modo escolhido, antes da seleção do usuário. Conjunto vazio é
// estado válido (200 com lista vazia), não erro.
func (h *AssignmentHandler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := usecase.AssignmentMode(q.Get("mode"))
	if !mode.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", usecase.ReasonUnknownMode)
		return
	}

	if err := h.Directory.Refresh(r.Context()); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao carregar leads")
		return
	}

	candidates := usecase.CandidateLeads(
		mode,
		h.Directory.Leads(),
		q.Get("source"),
		q.Get("target"),
		q.Get("q"),
	)

	writeJSON(w, http.StatusOK, candidates)
}
