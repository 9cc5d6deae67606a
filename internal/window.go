package internal

import (
	"fmt"
	"time"
)

// MinDate is the earliest calendar date any date layout can produce.
// An all-time window uses it as its cutoff.
var MinDate = time.Date(0, time.January, 1, 0, 0, 0, 0, time.UTC)

// Window is the retention window: a message is kept when its date is on
// or after Cutoff.
type Window struct {
	Cutoff time.Time
	Days   int // 0 for all time
}

// NewWindow returns the window covering the last days calendar days up to
// today. days <= 0 yields an all-time window.
func NewWindow(today time.Time, days int) Window {
	if days <= 0 {
		return AllTime()
	}
	return Window{
		Cutoff: calendarDay(today).AddDate(0, 0, -days),
		Days:   days,
	}
}

// AllTime returns a window that retains every date
func AllTime() Window {
	return Window{Cutoff: MinDate}
}

// Contains reports whether date falls inside the window (inclusive)
func (w Window) Contains(date time.Time) bool {
	return !calendarDay(date).Before(w.Cutoff)
}

// Describe returns a human-readable description for prompts and headers
func (w Window) Describe() string {
	if w.Days <= 0 {
		return "all time"
	}
	if w.Days == 1 {
		return "the last 1 day"
	}
	return fmt.Sprintf("the last %d days", w.Days)
}

// calendarDay truncates t to midnight UTC of its own calendar date
func calendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
