package ws

import (
	"encoding/json"
	"log"

	"codecanvas/backend/internal/preview"
)

// WsMessage is the framing for every message on the live-preview channel.
type WsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Message is an inbound frame with its sender, routed through the hub
// goroutine.
type Message struct {
	ProjectID string
	Data      []byte
	Sender    *Client
}

type previewUpdate struct {
	ProjectID string
	Document  string
}

// Hub fans composed preview documents out to the open editor tabs of each
// project. A room exists per project; all maps are owned by the Run goroutine.
type Hub struct {
	rooms map[string]map[*Client]bool

	Register   chan *Client
	Unregister chan *Client
	Inbound    chan *Message
	previews   chan previewUpdate
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		Inbound:    make(chan *Message),
		previews:   make(chan previewUpdate, 16),
	}
}

// BroadcastPreview delivers an already-composed preview document to every tab
// on the project's channel. Called from the update handler after a successful
// save.
func (h *Hub) BroadcastPreview(projectID, document string) {
	h.previews <- previewUpdate{ProjectID: projectID, Document: document}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			if _, ok := h.rooms[client.ProjectID]; !ok {
				h.rooms[client.ProjectID] = make(map[*Client]bool)
			}
			h.rooms[client.ProjectID][client] = true
			log.Printf("[Hub] Client %s joined preview channel for project %s", client.UserID, client.ProjectID)

		case client := <-h.Unregister:
			if room, ok := h.rooms[client.ProjectID]; ok {
				if room[client] {
					delete(room, client)
					close(client.Send)
					log.Printf("[Hub] Client %s left preview channel for project %s", client.UserID, client.ProjectID)
				}
				if len(room) == 0 {
					delete(h.rooms, client.ProjectID)
				}
			}

		case update := <-h.previews:
			h.sendPreview(update.ProjectID, update.Document, nil)

		case message := <-h.Inbound:
			var msg WsMessage
			if err := json.Unmarshal(message.Data, &msg); err != nil {
				log.Printf("[Hub] Error unmarshalling message: %v", err)
				continue
			}
			switch msg.Type {
			case "code_update":
				// An editor tab pushed unsaved code; recompose and relay the
				// preview to the project's other tabs.
				var payload struct {
					HTMLCode string `json:"htmlCode"`
					CSSCode  string `json:"cssCode"`
					JSCode   string `json:"jsCode"`
				}
				if err := json.Unmarshal(msg.Payload, &payload); err != nil {
					continue
				}
				doc := preview.Compose(payload.HTMLCode, payload.CSSCode, payload.JSCode)
				h.sendPreview(message.ProjectID, doc, message.Sender)
			}
		}
	}
}

// sendPreview writes a preview_update frame to the room, skipping the sender
// when the update originated from a tab. A client that can't keep up is
// dropped.
func (h *Hub) sendPreview(projectID, document string, sender *Client) {
	room, ok := h.rooms[projectID]
	if !ok {
		return
	}

	payload, _ := json.Marshal(map[string]string{"document": document})
	frame, _ := json.Marshal(WsMessage{Type: "preview_update", Payload: payload})

	for client := range room {
		if client == sender {
			continue
		}
		select {
		case client.Send <- frame:
		default:
			close(client.Send)
			delete(room, client)
		}
	}
}
