package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"codecanvas/backend/internal/store"
)

// envelope is the response shape every endpoint writes: a success flag, a
// human-readable message, and any extra payload fields flattened alongside.
type envelope map[string]any

func respond(w http.ResponseWriter, status int, success bool, message string, extra envelope) {
	body := envelope{"success": success, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Failed to write response: %v", err)
	}
}

func ok(w http.ResponseWriter, message string, extra envelope) {
	respond(w, http.StatusOK, true, message, extra)
}

func created(w http.ResponseWriter, message string, extra envelope) {
	respond(w, http.StatusCreated, true, message, extra)
}

func fail(w http.ResponseWriter, status int, message string) {
	respond(w, status, false, message, nil)
}

// Messages kept verbatim from the wire contract. The missing-project and
// wrong-owner cases share one message so a non-owner cannot probe which
// project ids exist.
const (
	msgUserNotFound   = "User not found!"
	msgProjectDenied  = "Project not found or you don't have permission!"
	msgInvalidRequest = "Invalid request body"
)

// failProject maps a store error from an owner-scoped project lookup to the
// envelope. Both ErrNotFound and ErrForbidden surface as the merged refusal.
func failProject(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(w, http.StatusNotFound, msgProjectDenied)
	case errors.Is(err, store.ErrForbidden):
		fail(w, http.StatusForbidden, msgProjectDenied)
	default:
		log.Printf("Project store error: %v", err)
		fail(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
