package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soberlog/soberlog/internal/schema"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

// respondError maps service errors onto status codes: constraint
// violations are the caller's fault, everything else is a server error.
func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, schema.ErrConstraint) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	http.Error(w, err.Error(), http.StatusInternalServerError)
}
