package chat

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	chatService "github.com/healthpulse/backend/internal/service/chat"
)

// WebSocketHandler is the bidirectional chat transport. Send
// semantics are identical to the HTTP endpoint; the socket adds
// typing notifications pushed as they change.
type WebSocketHandler struct {
	chatSvc  *chatService.Service
	upgrader websocket.Upgrader
}

// NewWebSocketHandler creates the websocket chat handler.
func NewWebSocketHandler(chatSvc *chatService.Service) *WebSocketHandler {
	return &WebSocketHandler{
		chatSvc: chatSvc,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

// RegisterWebSocketRoutes wires the websocket route.
func (h *WebSocketHandler) RegisterWebSocketRoutes(r chi.Router) {
	r.Get("/ws/{sessionID}", h.handleWebSocket)
}

type inboundFrame struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type outboundFrame struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

func (h *WebSocketHandler) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		http.Error(w, "sessionID is required", http.StatusBadRequest)
		return
	}

	transcript, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		http.Error(w, "session not found", http.StatusNotFound)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[ws] upgrade failed for session=%s: %v", sessionID, err)
		return
	}
	defer conn.Close()

	h.send(conn, sessionID, "transcript", transcript)

	for {
		var frame inboundFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[ws] read failed for session=%s: %v", sessionID, err)
			}
			return
		}

		switch frame.Type {
		case "message":
			h.handleMessage(r, conn, sessionID, frame.Text)
		case "ping":
			h.send(conn, sessionID, "pong", nil)
		default:
			h.send(conn, sessionID, "error", json.RawMessage(`"unknown frame type"`))
		}
	}
}

func (h *WebSocketHandler) handleMessage(r *http.Request, conn *websocket.Conn, sessionID, text string) {
	h.send(conn, sessionID, "typing", true)

	appended, err := h.chatSvc.Send(r.Context(), sessionID, text)
	if err != nil {
		h.send(conn, sessionID, "error", err.Error())
		h.send(conn, sessionID, "typing", false)
		return
	}

	for _, msg := range appended {
		h.send(conn, sessionID, "message", msg)
	}
	h.send(conn, sessionID, "typing", false)
}

func (h *WebSocketHandler) send(conn *websocket.Conn, sessionID, frameType string, data interface{}) {
	frame := outboundFrame{
		Type:      frameType,
		SessionID: sessionID,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := conn.WriteJSON(frame); err != nil {
		log.Printf("[ws] write failed for session=%s: %v", sessionID, err)
	}
}
