package handler

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	chatHandler "github.com/healthpulse/backend/internal/handler/chat"
	overviewHandler "github.com/healthpulse/backend/internal/handler/overview"
	reportHandler "github.com/healthpulse/backend/internal/handler/report"
	sessionHandler "github.com/healthpulse/backend/internal/handler/session"
	"github.com/healthpulse/backend/internal/handler/stream"
	trackerHandler "github.com/healthpulse/backend/internal/handler/tracker"
	middlewarePkg "github.com/healthpulse/backend/internal/middleware"
	aiService "github.com/healthpulse/backend/internal/service/ai"
	chatService "github.com/healthpulse/backend/internal/service/chat"
	"github.com/healthpulse/backend/internal/service/coordinator"
	"github.com/healthpulse/backend/internal/service/reportsvc"
	trackerService "github.com/healthpulse/backend/internal/service/tracker"
	"github.com/healthpulse/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services. aiSvc may be nil when
// the gateway credentials are absent; gateway-backed routes then
// answer 503 while the rest of the client keeps working.
func NewRouter(
	coordSvc *coordinator.Service,
	trackerSvc *trackerService.Service,
	chatSvc *chatService.Service,
	reportSvc *reportsvc.Service,
	aiSvc *aiService.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS())

	var streamHandler *stream.Handler
	if aiSvc != nil {
		streamHandler = stream.New(aiSvc, chatSvc)
	}

	r.Route("/api", func(api chi.Router) {
		api.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		sessionHandler.New(coordSvc, chatSvc).RegisterRoutes(api)
		trackerHandler.New(trackerSvc).RegisterRoutes(api)
		overviewHandler.New(coordSvc).RegisterRoutes(api)
		reportHandler.New(coordSvc, reportSvc).RegisterRoutes(api)

		ch := chatHandler.New(chatSvc)
		ch.RegisterRoutes(api)
		chatHandler.NewWebSocketHandler(chatSvc).RegisterWebSocketRoutes(api)

		api.Get("/stream/{sessionID}", func(w http.ResponseWriter, r *http.Request) {
			sessionID := chi.URLParam(r, "sessionID")
			userMessage := r.URL.Query().Get("message")

			if streamHandler == nil {
				utils.RespondError(w, http.StatusServiceUnavailable, "ai streaming unavailable")
				return
			}
			if userMessage == "" {
				utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
				return
			}

			if err := streamHandler.HandleStreamRequest(r.Context(), w, sessionID, userMessage); err != nil {
				log.Printf("[stream] error handling request: %v", err)
			}
		})
	})

	return r
}
