package http

import (
	"context"
	"net/http"
	"time"

	"orderdash/internal/adapter/postgres"
)

type HealthHandler struct {
	db postgres.DB
}

func NewHealthHandler(db postgres.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  string `json:"database"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	database := "connected"
	if err := h.db.Ping(ctx); err != nil {
		database = "disconnected"
	}

	respondJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Database:  database,
	})
}
