// Package reportsvc drives the report-simplifier screen: an explicit
// idle/submitting/success/failed state machine per session, with the
// actual simplification delegated to the assistant gateway.
package reportsvc

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"github.com/healthpulse/backend/internal/model/report"
)

var ErrGatewayUnavailable = errors.New("assistant gateway unavailable")

// GenericError is the only failure text ever shown to the user; the
// underlying error stays in the logs.
const GenericError = "Failed to simplify report. Please try again."

// Status enumerates the screen's states.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusSubmitting Status = "submitting"
	StatusSuccess    Status = "success"
	StatusFailed     Status = "failed"
)

// State is the externally visible screen state. Result and Error are
// mutually exclusive.
type State struct {
	Status Status             `json:"status"`
	Result *report.Simplified `json:"result,omitempty"`
	Error  string             `json:"error,omitempty"`
}

// Simplifier is the slice of the assistant gateway this screen needs.
type Simplifier interface {
	SimplifyReport(ctx context.Context, text string) (report.Simplified, error)
}

type sessionState struct {
	status     Status
	result     *report.Simplified
	errText    string
	generation uint64
}

// Service tracks simplifier state per session.
type Service struct {
	mu         sync.Mutex
	states     map[string]*sessionState
	simplifier Simplifier
}

// NewService creates the simplifier service. simplifier may be nil
// when the gateway is not configured; Simplify then fails with
// ErrGatewayUnavailable.
func NewService(simplifier Simplifier) *Service {
	return &Service{
		states:     make(map[string]*sessionState),
		simplifier: simplifier,
	}
}

func (s *Service) stateLocked(sessionID string) *sessionState {
	st, ok := s.states[sessionID]
	if !ok {
		st = &sessionState{status: StatusIdle}
		s.states[sessionID] = st
	}
	return st
}

func view(st *sessionState) State {
	return State{Status: st.status, Result: st.result, Error: st.errText}
}

// State returns the current screen state, idle by default.
func (s *Service) State(_ context.Context, sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return view(s.stateLocked(sessionID))
}

// Simplify runs one simplification. Blank input and requests while
// one is already submitting are ignored and return the unchanged
// state. The prior result or error is cleared when the new request
// starts, not when it ends; the submitting state is always exited.
func (s *Service) Simplify(ctx context.Context, sessionID, text string) (State, error) {
	trimmed := strings.TrimSpace(text)

	s.mu.Lock()
	st := s.stateLocked(sessionID)
	if trimmed == "" || st.status == StatusSubmitting {
		out := view(st)
		s.mu.Unlock()
		return out, nil
	}
	if s.simplifier == nil {
		out := view(st)
		s.mu.Unlock()
		return out, ErrGatewayUnavailable
	}

	st.status = StatusSubmitting
	st.result = nil
	st.errText = ""
	st.generation++
	generation := st.generation
	s.mu.Unlock()

	result, err := s.simplifier.SimplifyReport(ctx, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	// A reset while the request was in flight owns the state now;
	// drop the completion instead of resurrecting a left screen.
	if st.generation != generation {
		return view(st), nil
	}

	if err != nil {
		log.Printf("[report] simplify failed for session=%s: %v", sessionID, err)
		st.status = StatusFailed
		st.result = nil
		st.errText = GenericError
	} else {
		st.status = StatusSuccess
		st.result = &result
		st.errText = ""
	}
	return view(st), nil
}

// Reset returns the screen to idle, discarding any result, error, or
// in-flight completion. Called when the user leaves the screen.
func (s *Service) Reset(_ context.Context, sessionID string) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stateLocked(sessionID)
	st.status = StatusIdle
	st.result = nil
	st.errText = ""
	st.generation++
	return view(st)
}
