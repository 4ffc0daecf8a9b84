package handler

import (
	"encoding/json"
	"net/http"

	"github.com/formchat/backend/internal/repository"
)

// HealthHandler answers liveness probes.
type HealthHandler struct {
	db repository.DB
}

// NewHealthHandler creates a HealthHandler over the given database.
func NewHealthHandler(db repository.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Health handles GET /health. It reports 503 when the database is unreachable.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := h.db.Ping(r.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "degraded"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
