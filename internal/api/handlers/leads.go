package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tverano/solarscout/internal/contracts"
	"github.com/tverano/solarscout/internal/enrichment"
	"github.com/tverano/solarscout/internal/service"
	"github.com/tverano/solarscout/internal/store"
	"github.com/tverano/solarscout/pkg/logger"
)

// LeadHandler handles lead scoring and retrieval endpoints.
type LeadHandler struct {
	scorer   *service.Service
	pipeline *enrichment.Pipeline
	store    *store.Store
	logger   *logger.Logger
}

// NewLeadHandler creates a new lead handler. pipeline and st may be nil
// when the server runs without collectors or a database; the endpoints
// that need them return 503.
func NewLeadHandler(scorer *service.Service, pipeline *enrichment.Pipeline, st *store.Store, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		scorer:   scorer,
		pipeline: pipeline,
		store:    st,
		logger:   log,
	}
}

// Score scores a single lead record.
// POST /api/v1/leads/score
func (h *LeadHandler) Score(w http.ResponseWriter, r *http.Request) {
	var lead contracts.LeadRecord
	if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if lead.Property == nil {
		respondError(w, http.StatusBadRequest, "property_data is required")
		return
	}

	report := h.scorer.ScoreLead(&lead)
	respondJSON(w, http.StatusOK, report)
}

// Batch scores a set of lead records and returns the reports with a
// score distribution summary.
// POST /api/v1/leads/batch
func (h *LeadHandler) Batch(w http.ResponseWriter, r *http.Request) {
	var leads []*contracts.LeadRecord
	if err := json.NewDecoder(r.Body).Decode(&leads); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if len(leads) == 0 {
		respondError(w, http.StatusBadRequest, "at least one lead is required")
		return
	}

	report := h.scorer.BatchScore(leads)
	respondJSON(w, http.StatusOK, report)
}

type addressRequest struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
}

// ScoreAddress runs the full collection and scoring pipeline for one
// address.
// POST /api/v1/leads/address
func (h *LeadHandler) ScoreAddress(w http.ResponseWriter, r *http.Request) {
	if h.pipeline == nil {
		respondError(w, http.StatusServiceUnavailable, "Pipeline not configured")
		return
	}

	var req addressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Address == "" || req.ZipCode == "" {
		respondError(w, http.StatusBadRequest, "address and zip_code are required")
		return
	}

	result, err := h.pipeline.ProcessAddress(r.Context(), req.Address, req.City, req.State, req.ZipCode)
	if err != nil {
		h.logger.WithError(err).Error("Pipeline failed")
		respondError(w, http.StatusInternalServerError, "Failed to process address")
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// List retrieves stored leads within a score range, highest first.
// GET /api/v1/leads?min_score=70&max_score=100&limit=50
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	minScore := queryInt(r, "min_score", 0)
	maxScore := queryInt(r, "max_score", 100)
	limit := queryInt(r, "limit", 100)

	leads, err := h.store.Leads.GetByScore(r.Context(), minScore, maxScore, limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to query leads")
		respondError(w, http.StatusInternalServerError, "Failed to retrieve leads")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(leads),
		"leads": leads,
	})
}

type statusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

var validStatuses = map[string]bool{
	contracts.LeadStatusNew:          true,
	contracts.LeadStatusQualified:    true,
	contracts.LeadStatusContacted:    true,
	contracts.LeadStatusDisqualified: true,
}

// UpdateStatus transitions a lead's workflow status.
// PATCH /api/v1/leads/{lead_id}/status
func (h *LeadHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondError(w, http.StatusServiceUnavailable, "Database not configured")
		return
	}

	leadID := mux.Vars(r)["lead_id"]

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !validStatuses[req.Status] {
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.store.Leads.UpdateStatus(r.Context(), leadID, req.Status, req.Notes); err != nil {
		h.logger.WithError(err).Error("Failed to update lead status")
		respondError(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"lead_id": leadID,
		"status":  req.Status,
	})
}

// Helper functions

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{
		"error": message,
	})
}

func queryInt(r *http.Request, key string, defaultValue int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return defaultValue
	}
	return value
}
