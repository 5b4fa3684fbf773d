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

// UserHandler handles HTTP requests related to user profiles.
type UserHandler struct {
	Service *services.UserService
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// CreateUserHandler handles profile creation.
func (h *UserHandler) CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		logrus.WithError(err).Warn("Invalid request payload during user creation")
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.CreateUser(r.Context(), user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetCurrentUserHandler returns the device's logical current user.
func (h *UserHandler) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.CurrentUser(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		http.Error(w, "No user yet", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// GetUserHandler fetches a profile by id.
func (h *UserHandler) GetUserHandler(w http.ResponseWriter, r *http.Request) {
	user, err := h.Service.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// UpdateUserHandler merges a partial profile edit.
func (h *UserHandler) UpdateUserHandler(w http.ResponseWriter, r *http.Request) {
	var partial map[string]any
	if err := json.NewDecoder(r.Body).Decode(&partial); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.UpdateUser(r.Context(), mux.Vars(r)["id"], partial)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// SobrietyHandler returns day/year counts derived from the profile's
// sobriety date. ?decimals= controls year rounding (default 2).
func (h *UserHandler) SobrietyHandler(w http.ResponseWriter, r *http.Request) {
	decimals := 2
	if d := r.URL.Query().Get("decimals"); d != "" {
		if n, err := strconv.Atoi(d); err == nil {
			decimals = n
		}
	}
	stats, err := h.Service.Sobriety(r.Context(), mux.Vars(r)["id"], decimals)
	if err != nil {
		respondError(w, err)
		return
	}
	if stats == nil {
		http.Error(w, "No sobriety date set", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

// NearbyUsersHandler lists discoverable members near a point.
func (h *UserHandler) NearbyUsersHandler(w http.ResponseWriter, r *http.Request) {
	lat, err1 := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, err2 := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if err1 != nil || err2 != nil {
		http.Error(w, "lat and lon are required", http.StatusBadRequest)
		return
	}
	radius := 25.0
	if rq := r.URL.Query().Get("radius"); rq != "" {
		if f, err := strconv.ParseFloat(rq, 64); err == nil {
			radius = f
		}
	}

	users, err := h.Service.NearbyUsers(r.Context(), lat, lon, radius)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}
