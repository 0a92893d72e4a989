// Package overview derives the dashboard projections from the entry
// collection. Everything here is a pure function of its input; the
// handlers own no state beyond what the coordinator hands them.
package overview

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/healthpulse/backend/internal/model/wellness"
)

const (
	// Placeholder is rendered for headline values with no data.
	Placeholder = "--"
	// trendWindow bounds the chart series to the most recent entries.
	trendWindow = 7
	// recentWindow bounds the recent-log list.
	recentWindow = 3

	noNotesPlaceholder = "No notes added."
)

// Headline powers the three stat cards at the top of the dashboard.
// Values are pre-formatted for display; Recorded is false when the
// collection is empty and every value is a placeholder.
type Headline struct {
	SleepHours string `json:"sleepHours"`
	Energy     string `json:"energy"`
	Mood       string `json:"mood"`
	Recorded   bool   `json:"recorded"`
}

// TrendPoint is one sample of the wellness trend chart.
type TrendPoint struct {
	Day    string  `json:"day"`
	Mood   int     `json:"mood"`
	Energy int     `json:"energy"`
	Sleep  float64 `json:"sleep"`
}

// RecentEntry is one row of the recent-log list.
type RecentEntry struct {
	ID         string  `json:"id"`
	Date       string  `json:"date"`
	Notes      string  `json:"notes"`
	Mood       int     `json:"mood"`
	SleepHours float64 `json:"sleepHours"`
}

// SortByDate returns a copy of logs sorted ascending by date. Ties keep
// insertion order so the latest append wins for equal timestamps.
func SortByDate(logs []wellness.DailyLog) []wellness.DailyLog {
	sorted := make([]wellness.DailyLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

// HeadlineStats reports the chronologically latest entry's vitals, or
// placeholders when no entry exists.
func HeadlineStats(logs []wellness.DailyLog) Headline {
	if len(logs) == 0 {
		return Headline{SleepHours: Placeholder, Energy: Placeholder, Mood: Placeholder}
	}

	sorted := SortByDate(logs)
	latest := sorted[len(sorted)-1]

	return Headline{
		SleepHours: formatSleep(latest.SleepHours),
		Energy:     fmt.Sprintf("%d/10", latest.Energy),
		Mood:       fmt.Sprintf("%d/10", latest.Mood),
		Recorded:   true,
	}
}

// TrendSeries projects the last trendWindow entries, sorted ascending
// by date, into chart points. Fewer entries produce a shorter series
// with no padding.
func TrendSeries(logs []wellness.DailyLog) []TrendPoint {
	sorted := SortByDate(logs)
	if len(sorted) > trendWindow {
		sorted = sorted[len(sorted)-trendWindow:]
	}

	points := make([]TrendPoint, 0, len(sorted))
	for _, entry := range sorted {
		points = append(points, TrendPoint{
			Day:    entry.Date.Format("Mon"),
			Mood:   entry.Mood,
			Energy: entry.Energy,
			Sleep:  entry.SleepHours,
		})
	}
	return points
}

// Recent lists up to recentWindow entries in reverse-chronological
// order for the recent-log list.
func Recent(logs []wellness.DailyLog) []RecentEntry {
	sorted := SortByDate(logs)

	entries := make([]RecentEntry, 0, recentWindow)
	for i := len(sorted) - 1; i >= 0 && len(entries) < recentWindow; i-- {
		entry := sorted[i]
		notes := entry.Notes
		if notes == "" {
			notes = noNotesPlaceholder
		}
		entries = append(entries, RecentEntry{
			ID:         entry.ID,
			Date:       entry.Date.Format("Monday, Jan 2"),
			Notes:      notes,
			Mood:       entry.Mood,
			SleepHours: entry.SleepHours,
		})
	}
	return entries
}

// formatSleep renders "7.5 hrs" or "8 hrs", trimming trailing zeros.
func formatSleep(hours float64) string {
	return strconv.FormatFloat(hours, 'f', -1, 64) + " hrs"
}
