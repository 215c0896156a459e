package formatter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := RenderTable(
		[]string{"A", "B"},
		[][]string{
			{StyleGreen.Render("short"), "x"},
			{"a much longer cell", "y"},
		},
	)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	// Second column starts at the same visible offset on every data row.
	assert.Equal(t, lipgloss.Width(lines[2]), lipgloss.Width(lines[3]))
	assert.Contains(t, out, "a much longer cell")
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_ShortRowsArePadded(t *testing.T) {
	out := RenderTable([]string{"A", "B", "C"}, [][]string{{"1"}})
	assert.Contains(t, out, "1")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestFormatError_DomainError(t *testing.T) {
	err := domain.ErrTutorConflictGroup.With("group TIDS1-1 already has a tutor")

	out := FormatError(err)

	assert.Contains(t, out, "error [validation_failed/TUTOR_CONFLICT_GROUP]:")
	assert.Contains(t, out, "group TIDS1-1 already has a tutor")
}

func TestFormatError_ListsFields(t *testing.T) {
	err := &domain.Error{
		Kind:    domain.KindValidation,
		Code:    domain.CodeInvalidInput,
		Message: "invalid input",
		Fields: []domain.FieldError{
			{Field: "topic", Message: "is required"},
			{Field: "week_completed", Message: "must be at least 1"},
		},
	}

	out := FormatError(err)

	assert.Contains(t, out, "topic")
	assert.Contains(t, out, "week_completed")
	assert.Equal(t, 2, strings.Count(out, "\n"))
}

func TestFormatError_WrappedDomainError(t *testing.T) {
	err := errors.Join(errors.New("context"), domain.ErrUnknownTerm.With("term x not found"))
	assert.Contains(t, FormatError(err), "[not_found/UNKNOWN_TERM]")
}

func TestFormatError_PlainErrorIsInternal(t *testing.T) {
	out := FormatError(errors.New("disk full"))
	assert.Contains(t, out, "error [internal]:")
	assert.Contains(t, out, "disk full")
	assert.Empty(t, FormatError(nil))
}

func TestFormatTermList_ShowsStateAsOfNow(t *testing.T) {
	terms := []*domain.Term{
		{ID: "t-1", StartDate: date(2025, 1, 6), EndDate: date(2025, 5, 9), GeneratedName: "Jan-May 2025", Active: true},
		{ID: "t-2", StartDate: date(2025, 9, 1), EndDate: date(2025, 12, 19), GeneratedName: "Sep-Dec 2025", Active: true},
		{ID: "t-3", StartDate: date(2024, 9, 1), EndDate: date(2024, 12, 19), GeneratedName: "Sep-Dec 2024", Active: false},
	}

	out := FormatTermList(terms, date(2025, 3, 1))

	assert.Contains(t, out, "Jan-May 2025")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "Upcoming")
	assert.Contains(t, out, "inactive")
	assert.Contains(t, out, "2025-01-06")
}

func TestFormatHeader_WithAndWithoutLines(t *testing.T) {
	justification := "strike week"
	h := &domain.ProgressHeader{ID: "h-1", AcademicLoadID: "l-1", Status: domain.ProgressRejected, RevisionCount: 1}

	empty := FormatHeader(h, "Databases · TIDS1-1", nil)
	assert.Contains(t, empty, "No lines recorded.")
	assert.Contains(t, empty, "Rejected")

	withLines := FormatHeader(h, "", []*domain.ProgressLine{
		{ID: "ln-1", Topic: "Normalization", WeekCompleted: 3, AdvanceState: domain.AdvanceDelayed, IsLate: true, Justification: &justification},
	})
	assert.Contains(t, withLines, "Normalization")
	assert.Contains(t, withLines, "late")
	assert.Contains(t, withLines, "strike week")
	assert.Contains(t, withLines, "l-1")
}

func TestFormatLoadList_FallsBackToTruncatedIDs(t *testing.T) {
	loads := []*domain.AcademicLoad{
		{ID: "load-0001-aaaa", ProfessorID: "prof-0001-bbbb", Subject: "Databases", GroupID: "g-1", TermID: "t-1", IsTutor: true, Active: true},
	}

	out := FormatLoadList(loads, LoadNames{Groups: map[string]string{"g-1": "TIDS1-1"}})

	assert.Contains(t, out, "TIDS1-1")
	assert.Contains(t, out, "prof-000")
	assert.Contains(t, out, "tutor")
}

func TestFormatTopics_NumbersTopics(t *testing.T) {
	out := FormatTopics(catalog.Subject{Name: "Databases", Topics: []string{"ER modeling", "SQL"}})
	assert.Contains(t, out, " 1. ER modeling")
	assert.Contains(t, out, " 2. SQL")
}

func TestBadges_UnknownValuesRenderRaw(t *testing.T) {
	assert.Contains(t, TermStateBadge("odd"), "odd")
	assert.Contains(t, ProgressStatusPill("odd"), "odd")
	assert.Contains(t, AdvanceStateBadge("odd"), "odd")
	assert.Contains(t, RoleBadge(domain.RoleFullTimeProfessor), "full time professor")
}
