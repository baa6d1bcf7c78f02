package handlers

import (
	"net/http"
	"time"

	"github.com/tverano/solarscout/pkg/database"
	"github.com/tverano/solarscout/pkg/logger"
)

// HealthHandler reports service and database health.
type HealthHandler struct {
	db     *database.DB
	logger *logger.Logger
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(db *database.DB, log *logger.Logger) *HealthHandler {
	return &HealthHandler{db: db, logger: log}
}

// Get returns service health.
// GET /health
func (h *HealthHandler) Get(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"service":   "solarscout-api",
		"timestamp": time.Now(),
	}

	if h.db != nil {
		status, err := h.db.HealthCheck(r.Context())
		if err != nil || !status.Healthy {
			h.logger.WithError(err).Warn("Database health check failed")
			response["status"] = "degraded"
		}
		response["database"] = status
	}

	if response["status"] == "ok" {
		respondJSON(w, http.StatusOK, response)
	} else {
		respondJSON(w, http.StatusServiceUnavailable, response)
	}
}
