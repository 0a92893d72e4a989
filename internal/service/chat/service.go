// Package chat maintains the assistant conversation transcript for
// each session and orchestrates sends against the gateway.
package chat

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/healthpulse/backend/internal/model/chat"
	"github.com/healthpulse/backend/internal/model/persona"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrGatewayUnavailable = errors.New("assistant gateway unavailable")
)

// Fixed assistant lines. Failures are never surfaced verbatim in the
// transcript; they degrade to these turns.
const (
	FallbackReply = "I apologize, but I'm having trouble connecting right now."
	EmptyReply    = "I'm sorry, I couldn't generate a response."
)

// Responder is the slice of the assistant gateway the chat screen
// needs: history plus the new message in, reply text out.
type Responder interface {
	Converse(ctx context.Context, history []chat.Turn, newMessage string) (string, error)
}

// Service holds per-session transcripts and the typing flag that
// serializes sends.
type Service struct {
	mu           sync.Mutex
	transcripts  map[string][]chat.Message
	typing       map[string]bool
	responder    Responder
	assistant    persona.Persona
	historyLimit int
}

// NewService creates the chat service. responder may be nil when the
// gateway is not configured; sends then fail with
// ErrGatewayUnavailable.
func NewService(responder Responder, assistant persona.Persona, historyLimit int) *Service {
	if historyLimit < 1 {
		historyLimit = 1
	}
	return &Service{
		transcripts:  make(map[string][]chat.Message),
		typing:       make(map[string]bool),
		responder:    responder,
		assistant:    assistant,
		historyLimit: historyLimit,
	}
}

// StartTranscript seeds the session's transcript with the fixed
// assistant greeting. Calling it again for the same session is a
// no-op.
func (s *Service) StartTranscript(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transcripts[sessionID]; ok {
		return
	}

	greeting := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Text:      s.assistant.OpeningLine,
		CreatedAt: time.Now().UTC(),
	}
	s.transcripts[sessionID] = []chat.Message{greeting}
}

// Transcript returns a copy of the session's messages in order.
func (s *Service) Transcript(_ context.Context, sessionID string) ([]chat.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages, ok := s.transcripts[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	copied := make([]chat.Message, len(messages))
	copy(copied, messages)
	return copied, nil
}

// Typing reports whether a send is currently in flight for the
// session.
func (s *Service) Typing(_ context.Context, sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.typing[sessionID]
}

// Send appends the user's message, asks the gateway for a reply with
// the transcript as it stood before the new message, and appends
// exactly one assistant turn: the reply, the empty-reply line, or the
// fallback apology. Blank input and sends while one is already in
// flight are ignored. The returned slice holds the appended messages.
func (s *Service) Send(ctx context.Context, sessionID, text string) ([]chat.Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, nil
	}

	// Session existence is reported before gateway availability so an
	// unknown session is a 404 either way.
	if !s.exists(sessionID) {
		return nil, ErrSessionNotFound
	}
	if s.responder == nil {
		return nil, ErrGatewayUnavailable
	}

	userMsg, history, ok, err := s.begin(sessionID, trimmed)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A send is already in flight; serialize by ignoring this one.
		return nil, nil
	}

	reply, convErr := s.responder.Converse(ctx, history, trimmed)
	if convErr != nil {
		log.Printf("[chat] converse failed for session=%s: %v", sessionID, convErr)
	}

	assistantMsg := s.finish(sessionID, reply, convErr)
	return []chat.Message{userMsg, assistantMsg}, nil
}

// BeginSend is the streaming-transport half of Send: it validates the
// input, appends the user turn, and raises the typing flag. The
// transport generates the reply itself and must call FinishSend
// exactly once afterwards. ok is false when the input was ignored.
func (s *Service) BeginSend(_ context.Context, sessionID, text string) (chat.Message, []chat.Turn, bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return chat.Message{}, nil, false, nil
	}
	return s.begin(sessionID, trimmed)
}

// FinishSend records the assistant turn produced by a streaming
// transport, degrading to the fixed fallback lines on failure, and
// clears the typing flag.
func (s *Service) FinishSend(_ context.Context, sessionID, reply string, convErr error) chat.Message {
	return s.finish(sessionID, reply, convErr)
}

func (s *Service) exists(sessionID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.transcripts[sessionID]
	return ok
}

// begin appends the user turn and raises the typing flag. The history
// projection deliberately excludes the message being sent; it travels
// separately as the query.
func (s *Service) begin(sessionID, text string) (chat.Message, []chat.Turn, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	transcript, exists := s.transcripts[sessionID]
	if !exists {
		return chat.Message{}, nil, false, ErrSessionNotFound
	}
	if s.typing[sessionID] {
		return chat.Message{}, nil, false, nil
	}

	history := chat.HistoryOf(s.tailLocked(transcript))

	userMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleUser,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
	s.transcripts[sessionID] = append(transcript, userMsg)
	s.typing[sessionID] = true

	return userMsg, history, true, nil
}

// finish appends the assistant turn and always clears the typing flag.
func (s *Service) finish(sessionID, reply string, convErr error) chat.Message {
	text := strings.TrimSpace(reply)
	switch {
	case convErr != nil:
		text = FallbackReply
	case text == "":
		text = EmptyReply
	}

	assistantMsg := chat.Message{
		ID:        uuid.NewString(),
		SessionID: sessionID,
		Role:      chat.RoleAssistant,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.transcripts[sessionID] = append(s.transcripts[sessionID], assistantMsg)
	s.typing[sessionID] = false
	return assistantMsg
}

// tailLocked bounds the history sent to the gateway. Caller must hold
// s.mu.
func (s *Service) tailLocked(messages []chat.Message) []chat.Message {
	if len(messages) <= s.historyLimit {
		return messages
	}
	return messages[len(messages)-s.historyLimit:]
}
