package overview

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	analysis "github.com/healthpulse/backend/internal/analysis/overview"
	"github.com/healthpulse/backend/internal/model/wellness"
	"github.com/healthpulse/backend/internal/service/coordinator"
)

func setupRouter(seed func() []wellness.DailyLog) (*chi.Mux, *coordinator.Service) {
	coordSvc := coordinator.NewService(seed)
	handler := New(coordSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, coordSvc
}

func get(r *chi.Mux, sessionID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/session/"+sessionID+"/overview", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestOverviewEmptyCollection(t *testing.T) {
	r, coordSvc := setupRouter(nil)
	session, _ := coordSvc.CreateSession(context.Background())

	resp := get(r, session.ID)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body Response
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !body.Empty {
		t.Fatal("expected empty flag")
	}
	if body.Stats.Mood != analysis.Placeholder {
		t.Fatalf("expected placeholder mood, got %q", body.Stats.Mood)
	}
	if len(body.Trend) != 0 || len(body.Recent) != 0 {
		t.Fatalf("expected empty projections, got %+v", body)
	}
}

func TestOverviewWithSeededLogs(t *testing.T) {
	r, coordSvc := setupRouter(wellness.SeedLogs)
	session, _ := coordSvc.CreateSession(context.Background())

	resp := get(r, session.ID)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var body Response
	_ = json.Unmarshal(resp.Body.Bytes(), &body)
	if body.Empty {
		t.Fatal("expected non-empty overview")
	}
	if len(body.Trend) != 6 {
		t.Fatalf("expected 6 trend points, got %d", len(body.Trend))
	}
	if len(body.Recent) != 3 {
		t.Fatalf("expected 3 recent rows, got %d", len(body.Recent))
	}
	if body.Stats.Mood != "9/10" {
		t.Fatalf("expected latest mood 9/10, got %q", body.Stats.Mood)
	}
}

func TestOverviewUnknownSession(t *testing.T) {
	r, _ := setupRouter(nil)

	resp := get(r, "missing")
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
