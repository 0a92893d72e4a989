package chat

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	chatService "github.com/healthpulse/backend/internal/service/chat"
	"github.com/healthpulse/backend/pkg/utils"
)

// Handler exposes the chat screen over plain HTTP.
type Handler struct {
	chatSvc *chatService.Service
}

// New creates the chat handler.
func New(chatSvc *chatService.Service) *Handler {
	return &Handler{chatSvc: chatSvc}
}

// RegisterRoutes wires the chat routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}/chat", h.handleTranscript)
	r.Post("/session/{sessionID}/chat/messages", h.handleSend)
}

func (h *Handler) handleTranscript(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	messages, err := h.chatSvc.Transcript(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"messages": messages,
		"typing":   h.chatSvc.Typing(r.Context(), sessionID),
	})
}

func (h *Handler) handleSend(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appended, err := h.chatSvc.Send(r.Context(), sessionID, payload.Text)
	if err != nil {
		switch {
		case errors.Is(err, chatService.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, chatService.ErrGatewayUnavailable):
			utils.RespondError(w, http.StatusServiceUnavailable, "assistant unavailable")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "send failed")
		}
		return
	}

	// Blank input or an in-flight send leaves appended empty.
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"appended": appended,
		"ignored":  len(appended) == 0,
	})
}
