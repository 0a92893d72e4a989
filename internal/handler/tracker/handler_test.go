package tracker

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/healthpulse/backend/internal/service/coordinator"
	trackerservice "github.com/healthpulse/backend/internal/service/tracker"
)

func setupRouter(t *testing.T) (*chi.Mux, string) {
	t.Helper()
	coordSvc := coordinator.NewService(nil)
	trackerSvc := trackerservice.NewService(coordSvc)
	handler := New(trackerSvc)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)

	session, err := coordSvc.CreateSession(context.Background())
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	return r, session.ID
}

func doJSON(t *testing.T, r *chi.Mux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestGetDraftDefaults(t *testing.T) {
	r, sessionID := setupRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/session/"+sessionID+"/draft", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var draft trackerservice.Draft
	if err := json.Unmarshal(resp.Body.Bytes(), &draft); err != nil {
		t.Fatalf("decode draft: %v", err)
	}
	if draft.Mood != 7 || draft.Energy != 7 || draft.SleepHours != 7 {
		t.Fatalf("unexpected defaults: %+v", draft)
	}
}

func TestUpdateDraftRejectsOutOfRange(t *testing.T) {
	r, sessionID := setupRouter(t)

	for _, body := range []map[string]any{
		{"mood": 0},
		{"mood": 11},
		{"energy": -1},
		{"sleepHours": -2},
	} {
		resp := doJSON(t, r, http.MethodPut, "/session/"+sessionID+"/draft", body)
		if resp.Code != http.StatusBadRequest {
			t.Fatalf("body %v: expected 400, got %d", body, resp.Code)
		}
	}
}

func TestUpdateDraftAppliesPartialChanges(t *testing.T) {
	r, sessionID := setupRouter(t)

	resp := doJSON(t, r, http.MethodPut, "/session/"+sessionID+"/draft", map[string]any{"mood": 9, "notes": "Great sleep"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var draft trackerservice.Draft
	_ = json.Unmarshal(resp.Body.Bytes(), &draft)
	if draft.Mood != 9 || draft.Energy != 7 || draft.Notes != "Great sleep" {
		t.Fatalf("unexpected draft: %+v", draft)
	}
}

func TestAddAndRemoveSymptom(t *testing.T) {
	r, sessionID := setupRouter(t)

	resp := doJSON(t, r, http.MethodPost, "/session/"+sessionID+"/draft/symptoms", map[string]string{"text": " Headache "})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}

	var draft trackerservice.Draft
	_ = json.Unmarshal(resp.Body.Bytes(), &draft)
	if len(draft.Symptoms) != 1 || draft.Symptoms[0] != "Headache" {
		t.Fatalf("unexpected symptoms: %v", draft.Symptoms)
	}

	resp = doJSON(t, r, http.MethodDelete, "/session/"+sessionID+"/draft/symptoms/0", nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &draft)
	if len(draft.Symptoms) != 0 {
		t.Fatalf("expected empty symptoms, got %v", draft.Symptoms)
	}
}

func TestRemoveSymptomOutOfRange(t *testing.T) {
	r, sessionID := setupRouter(t)

	resp := doJSON(t, r, http.MethodDelete, "/session/"+sessionID+"/draft/symptoms/5", nil)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestSubmitCreatesEntry(t *testing.T) {
	r, sessionID := setupRouter(t)

	resp := doJSON(t, r, http.MethodPost, "/session/"+sessionID+"/draft/submit", nil)
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.Code)
	}

	var entry struct {
		ID   string `json:"id"`
		Mood int    `json:"mood"`
	}
	_ = json.Unmarshal(resp.Body.Bytes(), &entry)
	if entry.ID == "" || entry.Mood != 7 {
		t.Fatalf("unexpected entry: %+v", entry)
	}
}

func TestDraftUnknownSession(t *testing.T) {
	r, _ := setupRouter(t)

	resp := doJSON(t, r, http.MethodGet, "/session/missing/draft", nil)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.Code)
	}
}
