package wellness

import "time"

// Session captures one anonymous client session: which screen is
// active plus the entry collection owned by the coordinator.
type Session struct {
	ID        string    `json:"id"`
	Screen    Screen    `json:"screen"`
	CreatedAt time.Time `json:"createdAt"`
}
