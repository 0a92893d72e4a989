package wellness

import (
	"time"

	"github.com/google/uuid"
)

// SeedLogs returns a demo week of entries so a fresh session has
// something to chart. Dates are relative to now, oldest first.
func SeedLogs() []DailyLog {
	now := time.Now().UTC()
	day := func(ago int) time.Time { return now.AddDate(0, 0, -ago) }

	return []DailyLog{
		{ID: uuid.NewString(), Date: day(6), Mood: 6, Energy: 5, SleepHours: 6.5, Symptoms: []string{"Fatigue"}, Notes: "Long day"},
		{ID: uuid.NewString(), Date: day(5), Mood: 7, Energy: 6, SleepHours: 7, Symptoms: []string{}},
		{ID: uuid.NewString(), Date: day(4), Mood: 8, Energy: 8, SleepHours: 8, Symptoms: []string{}, Notes: "Good workout"},
		{ID: uuid.NewString(), Date: day(3), Mood: 5, Energy: 4, SleepHours: 5, Symptoms: []string{"Headache"}, Notes: "Stressful"},
		{ID: uuid.NewString(), Date: day(2), Mood: 7, Energy: 7, SleepHours: 7.5, Symptoms: []string{}},
		{ID: uuid.NewString(), Date: day(1), Mood: 9, Energy: 8, SleepHours: 8, Symptoms: []string{}, Notes: "Great sleep"},
	}
}
