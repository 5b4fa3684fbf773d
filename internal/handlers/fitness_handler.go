package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/soberlog/soberlog/internal/services"
)

// FitnessHandler handles HTTP requests for the spiritual fitness score.
type FitnessHandler struct {
	Service *services.FitnessService
}

// NewFitnessHandler creates a new instance of FitnessHandler.
func NewFitnessHandler(service *services.FitnessService) *FitnessHandler {
	return &FitnessHandler{Service: service}
}

// GetFitnessHandler returns the current snapshot for ?userId=, computing
// one on the spot when none is stored yet.
func (h *FitnessHandler) GetFitnessHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	timeframe := h.Service.Timeframe(r.Context())

	snap, err := h.Service.CurrentSnapshot(r.Context(), userID, timeframe)
	if err != nil {
		respondError(w, err)
		return
	}
	if snap != nil {
		respondJSON(w, http.StatusOK, snap)
		return
	}

	result, err := h.Service.Recompute(r.Context(), userID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// RecomputeFitnessHandler forces a fresh computation.
func (h *FitnessHandler) RecomputeFitnessHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.Recompute(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// SetTimeframeHandler stores the fitness timeframe preference.
func (h *FitnessHandler) SetTimeframeHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Days int `json:"days"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if err := h.Service.SetTimeframe(r.Context(), body.Days); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"timeframeDays": strconv.Itoa(body.Days)})
}
