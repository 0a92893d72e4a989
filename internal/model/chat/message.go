package chat

import "time"

// Message roles. The transcript only ever contains these two.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn in a conversation. Turns are appended in call
// order and never mutated or removed.
type Message struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// Turn is the role/text projection of a message sent to the gateway
// as conversational context.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

// HistoryOf projects messages into gateway turns, dropping anything
// with an unknown role or blank text.
func HistoryOf(messages []Message) []Turn {
	if len(messages) == 0 {
		return nil
	}
	turns := make([]Turn, 0, len(messages))
	for _, msg := range messages {
		if msg.Text == "" {
			continue
		}
		switch msg.Role {
		case RoleUser, RoleAssistant:
			turns = append(turns, Turn{Role: msg.Role, Text: msg.Text})
		}
	}
	return turns
}
