package wellness

import "time"

// Screen enumerates the client views the coordinator can select.
type Screen string

const (
	ScreenOverview   Screen = "overview"
	ScreenLogEntry   Screen = "log-entry"
	ScreenSimplifier Screen = "report-simplifier"
	ScreenChat       Screen = "chat"
)

// Valid reports whether the value is one of the known screens.
func (s Screen) Valid() bool {
	switch s {
	case ScreenOverview, ScreenLogEntry, ScreenSimplifier, ScreenChat:
		return true
	}
	return false
}

// DailyLog is a single day's self-reported wellness entry. Logs are
// immutable once recorded; the collection is append-only for the
// lifetime of the session.
type DailyLog struct {
	ID         string    `json:"id"`
	Date       time.Time `json:"date"`
	Mood       int       `json:"mood"`   // 1-10
	Energy     int       `json:"energy"` // 1-10
	SleepHours float64   `json:"sleepHours"`
	Symptoms   []string  `json:"symptoms"`
	Notes      string    `json:"notes"`
}
