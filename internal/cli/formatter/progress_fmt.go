package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/aula/internal/domain"
)

// FormatHeaderList renders progress headers. loadNames maps academic load id
// to a "subject · group" label.
func FormatHeaderList(headers []*domain.ProgressHeader, loadNames map[string]string) string {
	cols := []string{"ID", "LOAD", "STATUS", "SUBMITTED", "REVIEWED", "REVISIONS"}
	rows := make([][]string, 0, len(headers))
	for _, h := range headers {
		rows = append(rows, []string{
			TruncID(h.ID),
			nameOr(loadNames, h.AcademicLoadID),
			ProgressStatusPill(h.Status),
			OptDate(h.SubmittedAt),
			OptDate(h.ReviewedAt),
			fmt.Sprintf("%d", h.RevisionCount),
		})
	}
	return RenderBox("Progress", RenderTable(cols, rows))
}

// FormatHeader renders a header card followed by its line items.
func FormatHeader(h *domain.ProgressHeader, loadName string, lines []*domain.ProgressLine) string {
	if loadName == "" {
		loadName = h.AcademicLoadID
	}
	card := keyValues([][2]string{
		{"ID", h.ID},
		{"Load", loadName},
		{"Status", ProgressStatusPill(h.Status)},
		{"Reviewer", OptString(h.ReviewerID)},
		{"Submitted", OptDate(h.SubmittedAt)},
		{"Reviewed", OptDate(h.ReviewedAt)},
		{"Closed", OptDate(h.FinalFollowUpAt)},
		{"Revisions", fmt.Sprintf("%d", h.RevisionCount)},
	})

	var b strings.Builder
	b.WriteString(card)
	b.WriteString("\n\n")
	if len(lines) == 0 {
		b.WriteString(Dim("No lines recorded."))
	} else {
		b.WriteString(FormatLines(lines))
	}
	return RenderBox("Progress", b.String())
}

// FormatLines renders progress lines as a table.
func FormatLines(lines []*domain.ProgressLine) string {
	cols := []string{"ID", "WEEK", "TOPIC", "ADVANCE", "LATE", "JUSTIFICATION"}
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		late := Dim("no")
		if l.IsLate {
			late = StyleRed.Render("late")
		}
		rows = append(rows, []string{
			TruncID(l.ID),
			fmt.Sprintf("%d", l.WeekCompleted),
			l.Topic,
			AdvanceStateBadge(l.AdvanceState),
			late,
			OptString(l.Justification),
		})
	}
	return RenderTable(cols, rows)
}
