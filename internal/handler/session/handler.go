package session

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthpulse/backend/internal/model/wellness"
	chatService "github.com/healthpulse/backend/internal/service/chat"
	"github.com/healthpulse/backend/internal/service/coordinator"
	"github.com/healthpulse/backend/pkg/utils"
)

// Handler exposes session lifecycle and screen selection.
type Handler struct {
	coordSvc *coordinator.Service
	chatSvc  *chatService.Service
}

// New creates the session handler.
func New(coordSvc *coordinator.Service, chatSvc *chatService.Service) *Handler {
	return &Handler{coordSvc: coordSvc, chatSvc: chatSvc}
}

// RegisterRoutes wires the session routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/session", h.handleCreateSession)
	r.Get("/session/{sessionID}", h.handleGetSession)
	r.Put("/session/{sessionID}/screen", h.handleSelectScreen)
}

func (h *Handler) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := h.coordSvc.CreateSession(r.Context())
	if err != nil {
		utils.RespondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	// Seed the conversation with the assistant greeting up front so
	// the chat screen always opens on a non-empty transcript.
	h.chatSvc.StartTranscript(r.Context(), session.ID)

	utils.RespondJSON(w, http.StatusCreated, session)
}

func (h *Handler) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	session, err := h.coordSvc.GetSession(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) handleSelectScreen(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Screen wellness.Screen `json:"screen"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	session, err := h.coordSvc.SelectScreen(r.Context(), sessionID, payload.Screen)
	if err != nil {
		switch {
		case errors.Is(err, coordinator.ErrInvalidScreen):
			utils.RespondError(w, http.StatusBadRequest, "invalid screen")
		case errors.Is(err, coordinator.ErrSessionNotFound):
			utils.RespondError(w, http.StatusNotFound, "session not found")
		default:
			utils.RespondError(w, http.StatusInternalServerError, "failed to select screen")
		}
		return
	}
	utils.RespondJSON(w, http.StatusOK, session)
}
