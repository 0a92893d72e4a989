// Package coordinator owns the per-session view state and the
// append-only entry collection. Screens never touch each other's
// state directly; everything routes through here.
package coordinator

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthpulse/backend/internal/model/wellness"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidScreen   = errors.New("invalid screen")
)

// Service encapsulates session and entry-collection state management.
type Service struct {
	mu       sync.RWMutex
	sessions map[string]wellness.Session
	logs     map[string][]wellness.DailyLog
	seed     func() []wellness.DailyLog
}

// NewService bootstraps the in-memory coordinator. seed may be nil;
// when set, each new session starts with its output as the entry
// collection (demo mode).
func NewService(seed func() []wellness.DailyLog) *Service {
	return &Service{
		sessions: make(map[string]wellness.Session),
		logs:     make(map[string][]wellness.DailyLog),
		seed:     seed,
	}
}

// CreateSession provisions an anonymous session starting on the
// overview screen.
func (s *Service) CreateSession(_ context.Context) (wellness.Session, error) {
	session := wellness.Session{
		ID:        uuid.NewString(),
		Screen:    wellness.ScreenOverview,
		CreatedAt: time.Now().UTC(),
	}

	var initial []wellness.DailyLog
	if s.seed != nil {
		initial = s.seed()
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.logs[session.ID] = initial
	s.mu.Unlock()

	return session, nil
}

// GetSession retrieves a session by identifier.
func (s *Service) GetSession(_ context.Context, sessionID string) (wellness.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[sessionID]
	if !ok {
		return wellness.Session{}, ErrSessionNotFound
	}
	return session, nil
}

// SelectScreen transitions the session to the given screen. The
// transition is pure state; it has no other side effects.
func (s *Service) SelectScreen(_ context.Context, sessionID string, screen wellness.Screen) (wellness.Session, error) {
	if !screen.Valid() {
		return wellness.Session{}, ErrInvalidScreen
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return wellness.Session{}, ErrSessionNotFound
	}

	session.Screen = screen
	s.sessions[sessionID] = session
	return session, nil
}

// RecordEntry appends a completed entry to the session's collection
// and transitions the session back to the overview screen. The entry
// is stored as-given; the submitting form owns identifier and
// timestamp assignment.
func (s *Service) RecordEntry(_ context.Context, sessionID string, entry wellness.DailyLog) (wellness.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[sessionID]
	if !ok {
		return wellness.Session{}, ErrSessionNotFound
	}

	s.logs[sessionID] = append(s.logs[sessionID], entry)

	session.Screen = wellness.ScreenOverview
	s.sessions[sessionID] = session
	return session, nil
}

// Logs returns a copy of the session's entry collection in insertion
// order.
func (s *Service) Logs(_ context.Context, sessionID string) ([]wellness.DailyLog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	logs, ok := s.logs[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]wellness.DailyLog, len(logs))
	copy(copied, logs)
	return copied, nil
}
