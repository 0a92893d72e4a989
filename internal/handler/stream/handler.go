// Package stream delivers assistant replies over Server-Sent Events
// so the client can render the response as it is generated.
package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/cloudwego/eino/schema"

	"github.com/healthpulse/backend/internal/model/chat"
	chatService "github.com/healthpulse/backend/internal/service/chat"
	"github.com/healthpulse/backend/pkg/utils"
)

// Gateway is the slice of the assistant gateway this transport needs:
// one-shot replies plus the streaming variant.
type Gateway interface {
	StreamingEnabled() bool
	Converse(ctx context.Context, history []chat.Turn, newMessage string) (string, error)
	StreamConverse(ctx context.Context, history []chat.Turn, newMessage string) (*schema.StreamReader[*schema.Message], error)
}

// Handler manages streaming AI responses via Server-Sent Events.
type Handler struct {
	aiSvc   Gateway
	chatSvc *chatService.Service
}

// New creates a new stream handler.
func New(aiSvc Gateway, chatSvc *chatService.Service) *Handler {
	return &Handler{aiSvc: aiSvc, chatSvc: chatSvc}
}

// Event is one streaming response frame.
type Event struct {
	Event     string `json:"event"`
	Content   string `json:"content,omitempty"`
	SessionID string `json:"sessionId,omitempty"`
	Finished  bool   `json:"finished,omitempty"`
	Error     string `json:"error,omitempty"`
}

// HandleStreamRequest appends the user message, streams the reply in
// chunks, and records the final assistant turn in the transcript. The
// transcript sees exactly the same turns as a plain HTTP send.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, sessionID, userMessage string) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return fmt.Errorf("streaming unsupported")
	}

	utils.SetupSSEHeaders(w)

	userMsg, history, started, err := h.chatSvc.BeginSend(ctx, sessionID, userMessage)
	if err != nil {
		h.sendError(w, flusher, "session not found")
		return err
	}
	if !started {
		// Blank input or a send already in flight.
		utils.SendSSEChunk(w, flusher, Event{Event: "ignored", SessionID: sessionID, Finished: true})
		return nil
	}

	utils.SendSSEChunk(w, flusher, Event{Event: "start", SessionID: sessionID})

	reply, streamErr := h.streamReply(ctx, w, flusher, sessionID, history, userMsg.Text)

	// The assistant turn is recorded whatever happened; failures
	// degrade to the fixed fallback line, never a hole in the
	// transcript.
	final := h.chatSvc.FinishSend(ctx, sessionID, reply, streamErr)
	if streamErr != nil {
		log.Printf("[stream] reply failed for session=%s: %v", sessionID, streamErr)
	}

	utils.SendSSEChunk(w, flusher, Event{
		Event:     "done",
		SessionID: sessionID,
		Content:   final.Text,
		Finished:  true,
	})
	return nil
}

// streamReply produces the full reply text, chunk events as a side
// effect. Falls back to a single non-streaming generation when
// streaming is disabled.
func (h *Handler) streamReply(ctx context.Context, w http.ResponseWriter, flusher http.Flusher, sessionID string, history []chat.Turn, userText string) (string, error) {
	if !h.aiSvc.StreamingEnabled() {
		reply, err := h.aiSvc.Converse(ctx, history, userText)
		if err != nil {
			return "", err
		}
		utils.SendSSEChunk(w, flusher, Event{Event: "chunk", SessionID: sessionID, Content: reply})
		return reply, nil
	}

	stream, err := h.aiSvc.StreamConverse(ctx, history, userText)
	if err != nil {
		return "", err
	}
	defer stream.Close()

	var builder strings.Builder
	for {
		chunk, recvErr := stream.Recv()
		if errors.Is(recvErr, io.EOF) {
			break
		}
		if recvErr != nil {
			return "", recvErr
		}
		if chunk == nil || chunk.Content == "" {
			continue
		}
		builder.WriteString(chunk.Content)
		utils.SendSSEChunk(w, flusher, Event{Event: "chunk", SessionID: sessionID, Content: chunk.Content})
	}
	return builder.String(), nil
}

func (h *Handler) sendError(w http.ResponseWriter, flusher http.Flusher, message string) {
	utils.SendSSEChunk(w, flusher, Event{Event: "error", Error: message, Finished: true})
}
