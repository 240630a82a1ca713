package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/imobflow/crm-api/internal/usecase"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Error: code, Message: message})
}

// writeUseCaseError traduz a taxonomia de erros dos use cases: erro de
// domínio é culpa da entrada (422), erro técnico é 500 com mensagem
// genérica — o detalhe fica no log, não no cliente.
func writeUseCaseError(w http.ResponseWriter, err error) {
	if de, ok := err.(*usecase.DomainError); ok {
		writeErrorResponse(w, http.StatusUnprocessableEntity, de.Code, de.Message)
		return
	}
	if te, ok := err.(*usecase.TechnicalError); ok {
		log.Printf("❌ %s: %s", te.Code, te.Message)
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, "erro interno, tente novamente")
		return
	}
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "erro interno, tente novamente")
}
