package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/imobflow/crm-api/internal/infra/http/middleware"
	"github.com/imobflow/crm-api/internal/usecase"
)

// IntakeHandler recebe leads de fora (formulário do site, portais). É a
// única rota pública, por isso tem rate limit por IP.
type IntakeHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
	rateLimiter  *RateLimiter
}

func NewIntakeHandler(uc *usecase.CreateLeadUseCase) *IntakeHandler {
	return &IntakeHandler{
		CreateLeadUC: uc,
		rateLimiter:  NewRateLimiter(10, time.Minute), // 10 req/min por IP
	}
}

type intakeRequest struct {
	Name               string `json:"name"`
	Email              string `json:"email,omitempty"`
	Phone              string `json:"phone,omitempty"`
	Source             string `json:"source,omitempty"`
	PropertyOfInterest string `json:"property_of_interest,omitempty"`
	Notes              string `json:"notes,omitempty"`
}

type intakeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func (h *IntakeHandler) HandleIntake(w http.ResponseWriter, r *http.Request) {
	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		writeJSON(w, http.StatusTooManyRequests, intakeResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req intakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, intakeResponse{Success: false, Message: "Invalid JSON"})
		return
	}

	source := req.Source
	if source == "" {
		source = "portal"
	}

	input := usecase.CreateLeadInput{
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Source:             source,
		Notes:              req.Notes,
		PropertyOfInterest: req.PropertyOfInterest,
	}

	if _, err := h.CreateLeadUC.Execute(r.Context(), input); err != nil {
		if usecase.IsDomainError(err) {
			writeJSON(w, http.StatusBadRequest, intakeResponse{Success: false, Message: err.Error()})
			return
		}
		writeJSON(w, http.StatusInternalServerError, intakeResponse{Success: false, Message: "Failed to capture lead"})
		return
	}

	middleware.RecordLeadCreated("intake")
	writeJSON(w, http.StatusOK, intakeResponse{Success: true})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
