package stream

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cloudwego/eino/schema"

	chatModel "github.com/healthpulse/backend/internal/model/chat"
	"github.com/healthpulse/backend/internal/model/persona"
	chatservice "github.com/healthpulse/backend/internal/service/chat"
)

type fakeGateway struct {
	streaming bool
	reply     string
	chunks    []string
	err       error
}

func (f *fakeGateway) StreamingEnabled() bool {
	return f.streaming
}

func (f *fakeGateway) Converse(_ context.Context, _ []chatModel.Turn, _ string) (string, error) {
	return f.reply, f.err
}

func (f *fakeGateway) StreamConverse(_ context.Context, _ []chatModel.Turn, _ string) (*schema.StreamReader[*schema.Message], error) {
	if f.err != nil {
		return nil, f.err
	}
	messages := make([]*schema.Message, 0, len(f.chunks))
	for _, chunk := range f.chunks {
		messages = append(messages, schema.AssistantMessage(chunk, nil))
	}
	return schema.StreamReaderFromArray(messages), nil
}

func setup(gateway Gateway) (*Handler, *chatservice.Service, string) {
	chatSvc := chatservice.NewService(nil, persona.Assistant(), 10)
	sessionID := "session-1"
	chatSvc.StartTranscript(context.Background(), sessionID)
	return New(gateway, chatSvc), chatSvc, sessionID
}

// decodeEvents parses the data-only SSE frames written to the recorder.
func decodeEvents(t *testing.T, body string) []Event {
	t.Helper()
	var events []Event
	for _, frame := range strings.Split(body, "\n\n") {
		frame = strings.TrimSpace(frame)
		if frame == "" {
			continue
		}
		data := strings.TrimPrefix(frame, "data: ")
		var event Event
		if err := json.Unmarshal([]byte(data), &event); err != nil {
			t.Fatalf("decode frame %q: %v", frame, err)
		}
		events = append(events, event)
	}
	return events
}

func TestStreamEmitsChunksInOrder(t *testing.T) {
	handler, chatSvc, sessionID := setup(&fakeGateway{streaming: true, chunks: []string{"Stay ", "hydrated!"}})
	resp := httptest.NewRecorder()

	if err := handler.HandleStreamRequest(context.Background(), resp, sessionID, "Any tips?"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	events := decodeEvents(t, resp.Body.String())
	if len(events) != 4 {
		t.Fatalf("expected start, 2 chunks, done; got %d events", len(events))
	}
	if events[0].Event != "start" {
		t.Fatalf("expected start first, got %q", events[0].Event)
	}
	if events[1].Content != "Stay " || events[2].Content != "hydrated!" {
		t.Fatalf("unexpected chunk order: %q, %q", events[1].Content, events[2].Content)
	}
	done := events[3]
	if done.Event != "done" || !done.Finished || done.Content != "Stay hydrated!" {
		t.Fatalf("unexpected done event: %+v", done)
	}

	messages, _ := chatSvc.Transcript(context.Background(), sessionID)
	if len(messages) != 3 {
		t.Fatalf("expected transcript length 3, got %d", len(messages))
	}
	if messages[2].Text != "Stay hydrated!" {
		t.Fatalf("assistant turn must hold the assembled reply, got %q", messages[2].Text)
	}
}

func TestStreamFallsBackToSingleGeneration(t *testing.T) {
	handler, _, sessionID := setup(&fakeGateway{streaming: false, reply: "Rest well."})
	resp := httptest.NewRecorder()

	if err := handler.HandleStreamRequest(context.Background(), resp, sessionID, "Hi"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	events := decodeEvents(t, resp.Body.String())
	if len(events) != 3 {
		t.Fatalf("expected start, chunk, done; got %d events", len(events))
	}
	if events[1].Event != "chunk" || events[1].Content != "Rest well." {
		t.Fatalf("unexpected chunk event: %+v", events[1])
	}
}

func TestStreamFailureRecordsFallbackTurn(t *testing.T) {
	handler, chatSvc, sessionID := setup(&fakeGateway{streaming: true, err: errors.New("model down")})
	ctx := context.Background()
	resp := httptest.NewRecorder()

	if err := handler.HandleStreamRequest(ctx, resp, sessionID, "Hello"); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	events := decodeEvents(t, resp.Body.String())
	done := events[len(events)-1]
	if done.Event != "done" || done.Content != chatservice.FallbackReply {
		t.Fatalf("expected done event with the fallback line, got %+v", done)
	}

	// The transcript degrades the same way a plain HTTP send does.
	messages, _ := chatSvc.Transcript(ctx, sessionID)
	if len(messages) != 3 {
		t.Fatalf("expected transcript length 3, got %d", len(messages))
	}
	if messages[2].Text != chatservice.FallbackReply {
		t.Fatalf("expected fallback assistant turn, got %q", messages[2].Text)
	}
	if chatSvc.Typing(ctx, sessionID) {
		t.Fatal("typing flag must be cleared after failure")
	}
}

func TestStreamBlankMessageIgnored(t *testing.T) {
	handler, chatSvc, sessionID := setup(&fakeGateway{streaming: true, chunks: []string{"unused"}})
	ctx := context.Background()
	resp := httptest.NewRecorder()

	if err := handler.HandleStreamRequest(ctx, resp, sessionID, "   "); err != nil {
		t.Fatalf("HandleStreamRequest err: %v", err)
	}

	events := decodeEvents(t, resp.Body.String())
	if len(events) != 1 || events[0].Event != "ignored" || !events[0].Finished {
		t.Fatalf("expected a single ignored event, got %+v", events)
	}

	messages, _ := chatSvc.Transcript(ctx, sessionID)
	if len(messages) != 1 {
		t.Fatalf("transcript changed on blank input: %d messages", len(messages))
	}
}

func TestStreamUnknownSession(t *testing.T) {
	handler, _, _ := setup(&fakeGateway{streaming: true})
	resp := httptest.NewRecorder()

	err := handler.HandleStreamRequest(context.Background(), resp, "missing", "Hello")
	if !errors.Is(err, chatservice.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	events := decodeEvents(t, resp.Body.String())
	if len(events) != 1 || events[0].Event != "error" {
		t.Fatalf("expected a single error event, got %+v", events)
	}
}
