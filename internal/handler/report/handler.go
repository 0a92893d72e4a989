package report

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthpulse/backend/internal/service/coordinator"
	"github.com/healthpulse/backend/internal/service/reportsvc"
	"github.com/healthpulse/backend/pkg/utils"
)

// Handler exposes the report-simplifier screen.
type Handler struct {
	coordSvc  *coordinator.Service
	reportSvc *reportsvc.Service
}

// New creates the report handler.
func New(coordSvc *coordinator.Service, reportSvc *reportsvc.Service) *Handler {
	return &Handler{coordSvc: coordSvc, reportSvc: reportSvc}
}

// RegisterRoutes wires the simplifier routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}/report", h.handleState)
	r.Post("/session/{sessionID}/report/simplify", h.handleSimplify)
	r.Post("/session/{sessionID}/report/reset", h.handleReset)
}

func (h *Handler) sessionExists(w http.ResponseWriter, r *http.Request) (string, bool) {
	sessionID := chi.URLParam(r, "sessionID")
	if _, err := h.coordSvc.GetSession(r.Context(), sessionID); err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return "", false
	}
	return sessionID, true
}

func (h *Handler) handleState(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionExists(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.reportSvc.State(r.Context(), sessionID))
}

func (h *Handler) handleSimplify(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionExists(w, r)
	if !ok {
		return
	}

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	state, err := h.reportSvc.Simplify(r.Context(), sessionID, payload.Text)
	if err != nil {
		if errors.Is(err, reportsvc.ErrGatewayUnavailable) {
			utils.RespondError(w, http.StatusServiceUnavailable, "report simplification unavailable")
			return
		}
		utils.RespondError(w, http.StatusInternalServerError, "simplify request failed")
		return
	}
	utils.RespondJSON(w, http.StatusOK, state)
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := h.sessionExists(w, r)
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, h.reportSvc.Reset(r.Context(), sessionID))
}
