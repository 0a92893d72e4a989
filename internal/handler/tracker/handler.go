package tracker

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/healthpulse/backend/internal/service/coordinator"
	trackerService "github.com/healthpulse/backend/internal/service/tracker"
	"github.com/healthpulse/backend/pkg/utils"
)

// Handler exposes the entry-form draft endpoints.
type Handler struct {
	trackerSvc *trackerService.Service
}

// New creates the tracker handler.
func New(trackerSvc *trackerService.Service) *Handler {
	return &Handler{trackerSvc: trackerSvc}
}

// RegisterRoutes wires the draft routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}/draft", h.handleGetDraft)
	r.Put("/session/{sessionID}/draft", h.handleUpdateDraft)
	r.Post("/session/{sessionID}/draft/symptoms", h.handleAddSymptom)
	r.Delete("/session/{sessionID}/draft/symptoms/{index}", h.handleRemoveSymptom)
	r.Post("/session/{sessionID}/draft/submit", h.handleSubmit)
}

func (h *Handler) handleGetDraft(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	draft, err := h.trackerSvc.Draft(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleUpdateDraft(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload trackerService.Update
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The form's sliders constrain input in the UI; programmatic
	// callers are held to the same ranges here so the stored model
	// never needs clamping.
	if payload.Mood != nil && (*payload.Mood < 1 || *payload.Mood > 10) {
		utils.RespondError(w, http.StatusBadRequest, "mood must be between 1 and 10")
		return
	}
	if payload.Energy != nil && (*payload.Energy < 1 || *payload.Energy > 10) {
		utils.RespondError(w, http.StatusBadRequest, "energy must be between 1 and 10")
		return
	}
	if payload.SleepHours != nil && *payload.SleepHours < 0 {
		utils.RespondError(w, http.StatusBadRequest, "sleepHours must be non-negative")
		return
	}

	draft, err := h.trackerSvc.Apply(r.Context(), sessionID, payload)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleAddSymptom(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var payload struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft, err := h.trackerSvc.AddSymptom(r.Context(), sessionID, payload.Text)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleRemoveSymptom(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid symptom index")
		return
	}

	draft, err := h.trackerSvc.RemoveSymptom(r.Context(), sessionID, index)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusOK, draft)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	entry, err := h.trackerSvc.Submit(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	utils.RespondJSON(w, http.StatusCreated, entry)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, coordinator.ErrSessionNotFound):
		utils.RespondError(w, http.StatusNotFound, "session not found")
	case errors.Is(err, trackerService.ErrSymptomIndex):
		utils.RespondError(w, http.StatusBadRequest, "symptom index out of range")
	default:
		utils.RespondError(w, http.StatusInternalServerError, "tracker operation failed")
	}
}
