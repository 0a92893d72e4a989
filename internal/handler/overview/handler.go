package overview

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/healthpulse/backend/internal/analysis/overview"
	"github.com/healthpulse/backend/internal/service/coordinator"
	"github.com/healthpulse/backend/pkg/utils"
)

// Handler serves the dashboard projections.
type Handler struct {
	coordSvc *coordinator.Service
}

// New creates the overview handler.
func New(coordSvc *coordinator.Service) *Handler {
	return &Handler{coordSvc: coordSvc}
}

// RegisterRoutes wires the overview route.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/session/{sessionID}/overview", h.handleOverview)
}

// Response bundles everything the dashboard renders in one read.
type Response struct {
	Stats  overview.Headline      `json:"stats"`
	Trend  []overview.TrendPoint  `json:"trend"`
	Recent []overview.RecentEntry `json:"recent"`
	Empty  bool                   `json:"empty"`
}

func (h *Handler) handleOverview(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	logs, err := h.coordSvc.Logs(r.Context(), sessionID)
	if err != nil {
		utils.RespondError(w, http.StatusNotFound, "session not found")
		return
	}

	utils.RespondJSON(w, http.StatusOK, Response{
		Stats:  overview.HeadlineStats(logs),
		Trend:  overview.TrendSeries(logs),
		Recent: overview.Recent(logs),
		Empty:  len(logs) == 0,
	})
}
