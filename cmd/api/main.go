package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/healthpulse/backend/internal/config"
	"github.com/healthpulse/backend/internal/handler"
	"github.com/healthpulse/backend/internal/model/persona"
	"github.com/healthpulse/backend/internal/model/wellness"
	"github.com/healthpulse/backend/internal/service/ai"
	chatservice "github.com/healthpulse/backend/internal/service/chat"
	"github.com/healthpulse/backend/internal/service/coordinator"
	"github.com/healthpulse/backend/internal/service/reportsvc"
	trackerservice "github.com/healthpulse/backend/internal/service/tracker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
		log.Println("continuing with system environment variables only")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	assistant := persona.Assistant()

	// Initialize AI gateway. The client still works without it; the
	// gateway-backed screens degrade to 503.
	var aiSvc *ai.Service
	if cfg.AI.Enabled() {
		aiSvc, err = ai.NewService(ctx, assistant, cfg.AI)
		if err != nil {
			log.Printf("warning: failed to initialize AI gateway: %v", err)
			log.Println("continuing without assistant functionality - check the Ark environment variables")
		} else {
			log.Println("AI gateway initialized successfully")
		}
	} else {
		log.Println("Ark credentials not configured, skipping AI gateway initialization")
	}

	var seed func() []wellness.DailyLog
	if cfg.App.DemoLogs {
		seed = wellness.SeedLogs
		log.Println("demo log seeding enabled")
	}

	coordSvc := coordinator.NewService(seed)
	trackerSvc := trackerservice.NewService(coordSvc)

	var responder chatservice.Responder
	var simplifier reportsvc.Simplifier
	if aiSvc != nil {
		responder = aiSvc
		simplifier = aiSvc
	}
	chatSvc := chatservice.NewService(responder, assistant, cfg.App.ChatHistoryLimit)
	reportSvc := reportsvc.NewService(simplifier)

	router := handler.NewRouter(coordSvc, trackerSvc, chatSvc, reportSvc, aiSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("HealthPulse backend listening on %s", serverCfg.Addr)
	if err := runServer(ctx, srv); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runServer(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
