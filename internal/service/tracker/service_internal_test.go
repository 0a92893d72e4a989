package tracker

import (
	"context"
	"errors"
	"testing"

	"github.com/healthpulse/backend/internal/service/coordinator"
)

func TestSubmitUnknownSessionLeavesNoDraft(t *testing.T) {
	coordSvc := coordinator.NewService(nil)
	svc := NewService(coordSvc)

	_, err := svc.Submit(context.Background(), "missing")
	if !errors.Is(err, coordinator.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if len(svc.drafts) != 0 {
		t.Fatalf("failed submit must not park a draft, have %d", len(svc.drafts))
	}
}
