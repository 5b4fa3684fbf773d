package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/services"
)

// MeetingHandler handles HTTP requests related to meetings.
type MeetingHandler struct {
	Service *services.MeetingService
}

// NewMeetingHandler creates a new instance of MeetingHandler.
func NewMeetingHandler(service *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{Service: service}
}

// CreateMeetingHandler handles the creation of a new meeting.
func (h *MeetingHandler) CreateMeetingHandler(w http.ResponseWriter, r *http.Request) {
	var meeting models.Meeting
	if err := json.NewDecoder(r.Body).Decode(&meeting); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateMeeting(r.Context(), meeting)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetMeetingsHandler lists meetings: ?shared=true for the shared pool,
// ?userId= for a personal list, ?lat&lon&radius for a proximity search.
func (h *MeetingHandler) GetMeetingsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if query.Get("lat") != "" && query.Get("lon") != "" {
		lat, _ := strconv.ParseFloat(query.Get("lat"), 64)
		lon, _ := strconv.ParseFloat(query.Get("lon"), 64)
		radius := 25.0
		if rq := query.Get("radius"); rq != "" {
			if f, err := strconv.ParseFloat(rq, 64); err == nil {
				radius = f
			}
		}
		meetings, err := h.Service.MeetingsNear(r.Context(), lat, lon, radius)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, meetings)
		return
	}

	if query.Get("shared") == "true" {
		meetings, err := h.Service.SharedMeetings(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, meetings)
		return
	}

	meetings, err := h.Service.PersonalMeetings(r.Context(), query.Get("userId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, meetings)
}

// GetMeetingHandler fetches one meeting by id.
func (h *MeetingHandler) GetMeetingHandler(w http.ResponseWriter, r *http.Request) {
	meeting, err := h.Service.GetMeeting(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if meeting == nil {
		http.Error(w, "Meeting not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, meeting)
}

// UpdateMeetingHandler merges a partial edit.
func (h *MeetingHandler) UpdateMeetingHandler(w http.ResponseWriter, r *http.Request) {
	var partial map[string]any
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateMeeting(r.Context(), mux.Vars(r)["id"], partial)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		http.Error(w, "Meeting not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteMeetingHandler removes a meeting.
func (h *MeetingHandler) DeleteMeetingHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Service.DeleteMeeting(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if !removed {
		http.Error(w, "Meeting not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
