package formatter

import (
	"fmt"
	"time"

	"github.com/alexanderramin/aula/internal/domain"
)

// FormatTermList renders terms with their state as of now.
func FormatTermList(terms []*domain.Term, now time.Time) string {
	headers := []string{"ID", "NAME", "START", "END", "DAYS", "STATE"}
	rows := make([][]string, 0, len(terms))
	for _, t := range terms {
		rows = append(rows, []string{
			TruncID(t.ID),
			Bold(t.GeneratedName),
			Date(t.StartDate),
			Date(t.EndDate),
			fmt.Sprintf("%d", t.DurationDays()),
			termStateOrInactive(t, now),
		})
	}
	return RenderBox("Terms", RenderTable(headers, rows))
}

// FormatTerm renders a single term card.
func FormatTerm(t *domain.Term, now time.Time) string {
	return RenderBox(t.GeneratedName, keyValues([][2]string{
		{"ID", t.ID},
		{"Start", Date(t.StartDate)},
		{"End", Date(t.EndDate)},
		{"Days", fmt.Sprintf("%d", t.DurationDays())},
		{"State", termStateOrInactive(t, now)},
	}))
}

func termStateOrInactive(t *domain.Term, now time.Time) string {
	if !t.Active {
		return ActiveBadge(false)
	}
	return TermStateBadge(t.StateAt(now))
}
