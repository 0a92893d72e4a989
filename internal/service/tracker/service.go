// Package tracker holds the per-session daily-log draft: the slider
// values, symptom tags, and notes being edited before submission.
package tracker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthpulse/backend/internal/model/wellness"
	"github.com/healthpulse/backend/internal/service/coordinator"
)

var ErrSymptomIndex = errors.New("symptom index out of range")

const (
	defaultMood       = 7
	defaultEnergy     = 7
	defaultSleepHours = 7
)

// Draft is the editable state of the entry form.
type Draft struct {
	Mood       int      `json:"mood"`
	Energy     int      `json:"energy"`
	SleepHours float64  `json:"sleepHours"`
	Symptoms   []string `json:"symptoms"`
	Notes      string   `json:"notes"`
}

// Update carries partial vitals/notes changes; nil fields are left
// untouched.
type Update struct {
	Mood       *int     `json:"mood"`
	Energy     *int     `json:"energy"`
	SleepHours *float64 `json:"sleepHours"`
	Notes      *string  `json:"notes"`
}

// Service manages entry-form drafts keyed by session.
type Service struct {
	mu          sync.Mutex
	drafts      map[string]*Draft
	coordinator *coordinator.Service
}

// NewService creates the tracker backed by the given coordinator.
func NewService(coord *coordinator.Service) *Service {
	return &Service{
		drafts:      make(map[string]*Draft),
		coordinator: coord,
	}
}

func newDraft() *Draft {
	return &Draft{
		Mood:       defaultMood,
		Energy:     defaultEnergy,
		SleepHours: defaultSleepHours,
		Symptoms:   []string{},
	}
}

// draftLocked returns the session's draft, creating the defaulted one
// on first access. Caller must hold s.mu.
func (s *Service) draftLocked(sessionID string) *Draft {
	draft, ok := s.drafts[sessionID]
	if !ok {
		draft = newDraft()
		s.drafts[sessionID] = draft
	}
	return draft
}

// snapshot copies the draft so callers never alias internal state.
func snapshot(d *Draft) Draft {
	out := *d
	out.Symptoms = append([]string{}, d.Symptoms...)
	return out
}

// Draft returns the current draft for the session.
func (s *Service) Draft(ctx context.Context, sessionID string) (Draft, error) {
	if _, err := s.coordinator.GetSession(ctx, sessionID); err != nil {
		return Draft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return snapshot(s.draftLocked(sessionID)), nil
}

// Apply merges the update into the draft. Values are stored as-given;
// range checks live at the HTTP boundary.
func (s *Service) Apply(ctx context.Context, sessionID string, update Update) (Draft, error) {
	if _, err := s.coordinator.GetSession(ctx, sessionID); err != nil {
		return Draft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draftLocked(sessionID)
	if update.Mood != nil {
		draft.Mood = *update.Mood
	}
	if update.Energy != nil {
		draft.Energy = *update.Energy
	}
	if update.SleepHours != nil {
		draft.SleepHours = *update.SleepHours
	}
	if update.Notes != nil {
		draft.Notes = *update.Notes
	}
	return snapshot(draft), nil
}

// AddSymptom appends the trimmed tag to the draft. Empty or
// whitespace-only input is ignored. Duplicates are allowed.
func (s *Service) AddSymptom(ctx context.Context, sessionID, text string) (Draft, error) {
	if _, err := s.coordinator.GetSession(ctx, sessionID); err != nil {
		return Draft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draftLocked(sessionID)
	trimmed := strings.TrimSpace(text)
	if trimmed != "" {
		draft.Symptoms = append(draft.Symptoms, trimmed)
	}
	return snapshot(draft), nil
}

// RemoveSymptom deletes the tag at the given position.
func (s *Service) RemoveSymptom(ctx context.Context, sessionID string, index int) (Draft, error) {
	if _, err := s.coordinator.GetSession(ctx, sessionID); err != nil {
		return Draft{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft := s.draftLocked(sessionID)
	if index < 0 || index >= len(draft.Symptoms) {
		return Draft{}, ErrSymptomIndex
	}
	draft.Symptoms = append(draft.Symptoms[:index], draft.Symptoms[index+1:]...)
	return snapshot(draft), nil
}

// Submit turns the draft into an immutable DailyLog with a fresh
// identifier and the current timestamp, records it with the
// coordinator, and resets the draft to defaults.
func (s *Service) Submit(ctx context.Context, sessionID string) (wellness.DailyLog, error) {
	if _, err := s.coordinator.GetSession(ctx, sessionID); err != nil {
		return wellness.DailyLog{}, err
	}

	s.mu.Lock()
	draft := s.draftLocked(sessionID)
	entry := wellness.DailyLog{
		ID:         uuid.NewString(),
		Date:       time.Now().UTC(),
		Mood:       draft.Mood,
		Energy:     draft.Energy,
		SleepHours: draft.SleepHours,
		Symptoms:   append([]string{}, draft.Symptoms...),
		Notes:      draft.Notes,
	}
	s.mu.Unlock()

	if _, err := s.coordinator.RecordEntry(ctx, sessionID, entry); err != nil {
		return wellness.DailyLog{}, err
	}

	s.mu.Lock()
	s.drafts[sessionID] = newDraft()
	s.mu.Unlock()

	return entry, nil
}
