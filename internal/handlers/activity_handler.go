package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/services"
)

// ActivityHandler handles HTTP requests related to logged activities.
type ActivityHandler struct {
	Service *services.ActivityService
}

// NewActivityHandler creates a new instance of ActivityHandler.
func NewActivityHandler(service *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{Service: service}
}

// LogActivityHandler handles the creation of a new activity. The HTTP
// surface guarantees the type default the storage contract requires.
func (h *ActivityHandler) LogActivityHandler(w http.ResponseWriter, r *http.Request) {
	var activity models.Activity
	if err := json.NewDecoder(r.Body).Decode(&activity); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during activity logging")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	if activity.Type == "" {
		activity.Type = models.ActivityMeeting
	}

	created, err := h.Service.LogActivity(r.Context(), activity)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetActivitiesHandler lists activities, optionally filtered by user and
// limited.
func (h *ActivityHandler) GetActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	activities, err := h.Service.GetUserActivities(r.Context(), userID, limit)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, activities)
}

// GetActivityHandler fetches one activity by id.
func (h *ActivityHandler) GetActivityHandler(w http.ResponseWriter, r *http.Request) {
	activity, err := h.Service.GetActivity(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if activity == nil {
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, activity)
}

// UpdateActivityHandler applies a corrective edit.
func (h *ActivityHandler) UpdateActivityHandler(w http.ResponseWriter, r *http.Request) {
	var partial map[string]any
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateActivity(r.Context(), mux.Vars(r)["id"], partial)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteActivityHandler removes an activity.
func (h *ActivityHandler) DeleteActivityHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Service.DeleteActivity(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if !removed {
		http.Error(w, "Activity not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
