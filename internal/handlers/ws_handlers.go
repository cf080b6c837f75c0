package handlers

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"codecanvas/backend/internal/auth"
	"codecanvas/backend/internal/ws"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWs upgrades an editor tab onto its project's live-preview channel.
// Browsers can't set headers on websocket dials, so the token rides in the
// auth_token query parameter. The owner-scoped lookup runs before the upgrade:
// only the project's owner may subscribe.
func (h *Handler) ServeWs(w http.ResponseWriter, r *http.Request) {
	projectIDStr := chi.URLParam(r, "projectId")
	if projectIDStr == "" {
		http.Error(w, "Project ID is required in URL", http.StatusBadRequest)
		return
	}

	tokenStr := r.URL.Query().Get("auth_token")
	if tokenStr == "" {
		http.Error(w, "Missing auth_token query parameter", http.StatusUnauthorized)
		return
	}
	claims, err := auth.ValidateJWTAndGetClaims(tokenStr)
	if err != nil {
		http.Error(w, "Invalid auth token", http.StatusUnauthorized)
		return
	}

	owner, found := h.resolveOwner(w, r, claims.UserID)
	if !found {
		return
	}
	projectID, valid := parseProjectID(w, projectIDStr)
	if !valid {
		return
	}
	if _, err := h.projects.FindOwned(r.Context(), owner.ID, projectID); err != nil {
		failProject(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Failed to upgrade WebSocket connection:", err)
		return
	}

	client := &ws.Client{
		Hub:       h.hub,
		Conn:      conn,
		Send:      make(chan []byte, 256),
		ProjectID: projectID.String(),
		UserID:    owner.ID.String(),
	}
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
