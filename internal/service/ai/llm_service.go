// Package ai is the remote assistant gateway: the only place that
// talks to the generative-language backend. It exposes exactly two
// operations, report simplification and conversation, plus a
// streaming variant of the latter.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/healthpulse/backend/internal/config"
	"github.com/healthpulse/backend/internal/model/chat"
	"github.com/healthpulse/backend/internal/model/persona"
	"github.com/healthpulse/backend/internal/model/report"
)

// Service wraps the Ark chat model behind the two gateway operations.
type Service struct {
	chatModel model.ChatModel
	assistant persona.Persona
	cfg       config.AIConfig
	converse  compose.Runnable[map[string]any, *schema.Message]
	simplify  compose.Runnable[map[string]any, *schema.Message]
}

// NewService builds the model and compiles both chains.
func NewService(ctx context.Context, assistant persona.Persona, cfg config.AIConfig) (*Service, error) {
	chatModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	conversePrompt := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	converseChain := compose.NewChain[map[string]any, *schema.Message]()
	converseChain.AppendChatTemplate(conversePrompt)
	converseChain.AppendChatModel(chatModel)

	converse, err := converseChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile converse chain: %w", err)
	}

	simplifyPrompt := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage(simplifySystemPrompt),
		schema.UserMessage(simplifyUserPrompt),
	)

	simplifyChain := compose.NewChain[map[string]any, *schema.Message]()
	simplifyChain.AppendChatTemplate(simplifyPrompt)
	simplifyChain.AppendChatModel(chatModel)

	simplify, err := simplifyChain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compile simplify chain: %w", err)
	}

	return &Service{
		chatModel: chatModel,
		assistant: assistant,
		cfg:       cfg,
		converse:  converse,
		simplify:  simplify,
	}, nil
}

// StreamingEnabled indicates whether SSE streaming output is on.
func (s *Service) StreamingEnabled() bool {
	return s.cfg.StreamResponse
}

// Converse generates one assistant reply for the conversation. An
// empty reply is returned as-is; the caller decides how to degrade.
func (s *Service) Converse(ctx context.Context, history []chat.Turn, newMessage string) (string, error) {
	input := s.converseInput(history, newMessage)

	response, err := s.converse.Invoke(ctx, input)
	if err != nil {
		return "", fmt.Errorf("failed to run converse chain: %w", err)
	}
	if response == nil {
		return "", nil
	}

	log.Printf("[ai] generated reply, length=%d", len(response.Content))
	return response.Content, nil
}

// StreamConverse streams the assistant reply in chunks.
func (s *Service) StreamConverse(ctx context.Context, history []chat.Turn, newMessage string) (*schema.StreamReader[*schema.Message], error) {
	if !s.StreamingEnabled() {
		return nil, fmt.Errorf("streaming disabled in configuration")
	}

	input := s.converseInput(history, newMessage)

	stream, err := s.converse.Stream(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to stream converse chain: %w", err)
	}
	return stream, nil
}

// SimplifyReport asks the model for the structured simplification of
// the pasted medical text. Any response that does not satisfy the
// declared JSON contract is a failure.
func (s *Service) SimplifyReport(ctx context.Context, text string) (report.Simplified, error) {
	input := map[string]any{"report_text": text}

	response, err := s.simplify.Invoke(ctx, input)
	if err != nil {
		return report.Simplified{}, fmt.Errorf("failed to run simplify chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return report.Simplified{}, fmt.Errorf("empty response from model")
	}

	simplified, err := parseSimplified(response.Content)
	if err != nil {
		return report.Simplified{}, fmt.Errorf("malformed simplify response: %w", err)
	}

	log.Printf("[ai] simplified report, terms=%d actions=%d", len(simplified.KeyTerms), len(simplified.ActionItems))
	return simplified, nil
}

func (s *Service) converseInput(history []chat.Turn, newMessage string) map[string]any {
	return map[string]any{
		"system":  buildSystemPrompt(s.assistant),
		"history": historyMessages(history),
		"query":   newMessage,
	}
}

// historyMessages converts transcript turns into model messages,
// skipping anything that is neither a user nor an assistant turn.
func historyMessages(history []chat.Turn) []*schema.Message {
	if len(history) == 0 {
		return nil
	}

	messages := make([]*schema.Message, 0, len(history))
	for _, turn := range history {
		switch turn.Role {
		case chat.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Text))
		case chat.RoleAssistant:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return messages
}

// parseSimplified extracts the JSON object from the model output.
// Models occasionally wrap the object in prose or code fences, so the
// parse is anchored on the outermost braces.
func parseSimplified(content string) (report.Simplified, error) {
	trimmed := strings.TrimSpace(content)
	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start == -1 || end == -1 || end <= start {
		return report.Simplified{}, fmt.Errorf("missing json object")
	}

	var simplified report.Simplified
	if err := json.Unmarshal([]byte(trimmed[start:end+1]), &simplified); err != nil {
		return report.Simplified{}, err
	}

	if strings.TrimSpace(simplified.Summary) == "" {
		return report.Simplified{}, fmt.Errorf("missing summary field")
	}
	if simplified.KeyTerms == nil {
		simplified.KeyTerms = []report.KeyTerm{}
	}
	if simplified.ActionItems == nil {
		simplified.ActionItems = []string{}
	}
	return simplified, nil
}
