package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/imobflow/crm-api/internal/entity"
)

type PropertyHandler struct {
	Repo entity.PropertyRepositoryInterface
}

func NewPropertyHandler(repo entity.PropertyRepositoryInterface) *PropertyHandler {
	return &PropertyHandler{Repo: repo}
}

type createPropertyRequest struct {
	Title      string  `json:"title"`
	Kind       string  `json:"kind"`
	City       string  `json:"city"`
	District   string  `json:"district,omitempty"`
	PriceCents int64   `json:"price_cents"`
	Bedrooms   int     `json:"bedrooms,omitempty"`
	AreaM2     float64 `json:"area_m2,omitempty"`
}

func (h *PropertyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createPropertyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	property, err := entity.NewProperty(req.Title, req.Kind, req.City, req.PriceCents)
	if err != nil {
		writeErrorResponse(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		return
	}
	property.District = req.District
	property.Bedrooms = req.Bedrooms
	property.AreaM2 = req.AreaM2

	if err := h.Repo.Create(r.Context(), property); err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao salvar imóvel")
		return
	}

	writeJSON(w, http.StatusCreated, property)
}

func (h *PropertyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := entity.PropertyFilter{
		City:   q.Get("city"),
		Status: q.Get("status"),
	}

	props, err := h.Repo.List(r.Context(), filter)
	if err != nil {
		writeErrorResponse(w, http.StatusInternalServerError, "DATABASE_ERROR", "falha ao listar imóveis")
		return
	}
	if props == nil {
		props = []*entity.Property{}
	}
	writeJSON(w, http.StatusOK, props)
}
