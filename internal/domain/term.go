package domain

import (
	"fmt"
	"time"
)

const (
	DefaultMinTermDays = 110
	DefaultMaxTermDays = 130
)

type Term struct {
	ID            string
	StartDate     time.Time
	EndDate       time.Time
	GeneratedName string
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DurationDays counts whole calendar days between start and end.
func (t *Term) DurationDays() int {
	return DaysBetween(t.StartDate, t.EndDate)
}

// StateAt derives the lifecycle state for the given instant. Start and end
// days are inclusive: a term is Active for the whole of its last day.
func (t *Term) StateAt(now time.Time) TermState {
	day := DateOnly(now)
	switch {
	case day.Before(DateOnly(t.StartDate)):
		return TermUpcoming
	case day.After(DateOnly(t.EndDate)):
		return TermFinished
	default:
		return TermActive
	}
}

// Overlaps reports whether the closed ranges [start, end] intersect.
func (t *Term) Overlaps(start, end time.Time) bool {
	return !DateOnly(t.StartDate).After(DateOnly(end)) && !DateOnly(start).After(DateOnly(t.EndDate))
}

// TermName renders the display name from the start and end month-year,
// e.g. "Jan 2025 - May 2025".
func TermName(start, end time.Time) string {
	return fmt.Sprintf("%s %d - %s %d",
		start.Month().String()[:3], start.Year(),
		end.Month().String()[:3], end.Year())
}

// DateOnly truncates t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}
