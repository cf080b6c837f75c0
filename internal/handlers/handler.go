package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"codecanvas/backend/internal/middleware"
	"codecanvas/backend/internal/models"
	"codecanvas/backend/internal/store"
	"codecanvas/backend/internal/ws"
)

// Handler bundles the dependencies for the REST endpoints.
type Handler struct {
	users    store.Users
	projects store.Projects
	hub      *ws.Hub
}

func New(users store.Users, projects store.Projects, hub *ws.Hub) *Handler {
	return &Handler{users: users, projects: projects, hub: hub}
}

// resolveOwner turns the userId named in a request body into a User. Every
// project-scoped endpoint calls this first: an unknown or malformed id fails
// with "User not found!" regardless of whether the target project exists, and
// a valid token may only act as the account it was issued for.
func (h *Handler) resolveOwner(w http.ResponseWriter, r *http.Request, bodyUserID string) (models.User, bool) {
	id, err := uuid.Parse(bodyUserID)
	if err != nil {
		fail(w, http.StatusNotFound, msgUserNotFound)
		return models.User{}, false
	}

	user, err := h.users.ByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fail(w, http.StatusNotFound, msgUserNotFound)
		} else {
			log.Printf("Failed to look up user %s: %v", id, err)
			fail(w, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return models.User{}, false
	}

	if sessionID, hasSession := middleware.SessionUserID(r.Context()); hasSession && sessionID != user.ID.String() {
		fail(w, http.StatusForbidden, "You don't have permission to act as this user")
		return models.User{}, false
	}

	return user, true
}
