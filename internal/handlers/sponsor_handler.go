package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/soberlog/soberlog/internal/models"
	"github.com/soberlog/soberlog/internal/services"
)

// SponsorHandler handles HTTP requests for sponsor contacts and their
// action items.
type SponsorHandler struct {
	Service *services.SponsorContactService
}

// NewSponsorHandler creates a new instance of SponsorHandler.
func NewSponsorHandler(service *services.SponsorContactService) *SponsorHandler {
	return &SponsorHandler{Service: service}
}

// LogContactHandler records one sponsor interaction.
func (h *SponsorHandler) LogContactHandler(w http.ResponseWriter, r *http.Request) {
	var contact models.SponsorContact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	created, err := h.Service.LogContact(r.Context(), contact)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetContactsHandler lists sponsor contacts, optionally per user.
func (h *SponsorHandler) GetContactsHandler(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Service.Contacts(r.Context(), r.URL.Query().Get("userId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, contacts)
}

// AddActionItemHandler attaches a follow-up task to a contact.
func (h *SponsorHandler) AddActionItemHandler(w http.ResponseWriter, r *http.Request) {
	var item models.ActionItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	item.ContactID = mux.Vars(r)["id"]
	created, err := h.Service.AddActionItem(r.Context(), item)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// GetActionItemsHandler lists the follow-ups for one contact.
func (h *SponsorHandler) GetActionItemsHandler(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.ActionItems(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, items)
}

// CompleteActionItemHandler toggles an action item's completed flag.
func (h *SponsorHandler) CompleteActionItemHandler(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	updated, err := h.Service.SetActionItemCompleted(r.Context(), mux.Vars(r)["id"], body.Completed)
	if err != nil {
		respondError(w, err)
		return
	}
	if updated == nil {
		http.Error(w, "Action item not found", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// DeleteContactHandler removes a contact and its action items.
func (h *SponsorHandler) DeleteContactHandler(w http.ResponseWriter, r *http.Request) {
	removed, err := h.Service.DeleteContact(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondError(w, err)
		return
	}
	if !removed {
		http.Error(w, "Sponsor contact not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
