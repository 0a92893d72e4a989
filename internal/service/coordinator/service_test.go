package coordinator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/healthpulse/backend/internal/model/wellness"
	"github.com/healthpulse/backend/internal/service/coordinator"
)

func TestCreateSessionStartsOnOverview(t *testing.T) {
	svc := coordinator.NewService(nil)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}
	if session.Screen != wellness.ScreenOverview {
		t.Fatalf("unexpected initial screen: %s", session.Screen)
	}

	got, err := svc.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.ID != session.ID {
		t.Fatalf("unexpected session ID: got %s want %s", got.ID, session.ID)
	}

	logs, err := svc.Logs(ctx, session.ID)
	if err != nil {
		t.Fatalf("Logs err: %v", err)
	}
	if len(logs) != 0 {
		t.Fatalf("expected empty collection, got %d entries", len(logs))
	}
}

func TestCreateSessionWithSeed(t *testing.T) {
	svc := coordinator.NewService(wellness.SeedLogs)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx)
	if err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	logs, err := svc.Logs(ctx, session.ID)
	if err != nil {
		t.Fatalf("Logs err: %v", err)
	}
	if len(logs) != 6 {
		t.Fatalf("expected 6 seeded entries, got %d", len(logs))
	}
}

func TestGetSessionNotFound(t *testing.T) {
	svc := coordinator.NewService(nil)

	if _, err := svc.GetSession(context.Background(), "missing"); !errors.Is(err, coordinator.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSelectScreen(t *testing.T) {
	svc := coordinator.NewService(nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx)

	updated, err := svc.SelectScreen(ctx, session.ID, wellness.ScreenChat)
	if err != nil {
		t.Fatalf("SelectScreen err: %v", err)
	}
	if updated.Screen != wellness.ScreenChat {
		t.Fatalf("unexpected screen: %s", updated.Screen)
	}
}

func TestSelectScreenInvalid(t *testing.T) {
	svc := coordinator.NewService(nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx)

	if _, err := svc.SelectScreen(ctx, session.ID, wellness.Screen("settings")); !errors.Is(err, coordinator.ErrInvalidScreen) {
		t.Fatalf("expected ErrInvalidScreen, got %v", err)
	}
}

func TestRecordEntryAppendsAndTransitions(t *testing.T) {
	svc := coordinator.NewService(nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx)
	if _, err := svc.SelectScreen(ctx, session.ID, wellness.ScreenLogEntry); err != nil {
		t.Fatalf("SelectScreen err: %v", err)
	}

	entry := wellness.DailyLog{ID: "entry-1", Mood: 9, Energy: 8, SleepHours: 8}
	updated, err := svc.RecordEntry(ctx, session.ID, entry)
	if err != nil {
		t.Fatalf("RecordEntry err: %v", err)
	}
	if updated.Screen != wellness.ScreenOverview {
		t.Fatalf("expected transition to overview, got %s", updated.Screen)
	}

	logs, _ := svc.Logs(ctx, session.ID)
	if len(logs) != 1 || logs[0].ID != "entry-1" {
		t.Fatalf("unexpected collection: %+v", logs)
	}
}

func TestLogsReturnsCopy(t *testing.T) {
	svc := coordinator.NewService(nil)
	ctx := context.Background()

	session, _ := svc.CreateSession(ctx)
	_, _ = svc.RecordEntry(ctx, session.ID, wellness.DailyLog{ID: "a", Mood: 5})

	logs, _ := svc.Logs(ctx, session.ID)
	logs[0].Mood = 1

	again, _ := svc.Logs(ctx, session.ID)
	if again[0].Mood != 5 {
		t.Fatal("Logs leaked internal state")
	}
}
