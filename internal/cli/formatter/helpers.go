package formatter

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

const dateLayout = "2006-01-02"

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		inner := StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content
		return boxStyle.Render(inner)
	}
	return boxStyle.Render(content)
}

// Date renders a calendar date, or a dim placeholder for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return Dim("--")
	}
	return t.Format(dateLayout)
}

// OptDate renders an optional timestamp as a date.
func OptDate(t *time.Time) string {
	if t == nil {
		return Dim("--")
	}
	return Date(*t)
}

// OptString renders an optional free-text field.
func OptString(s *string) string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return Dim("--")
	}
	return *s
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// keyValues renders label/value pairs with labels padded to a common width.
func keyValues(pairs [][2]string) string {
	width := 0
	for _, p := range pairs {
		width = max(width, lipgloss.Width(p[0]))
	}
	lines := make([]string, 0, len(pairs))
	for _, p := range pairs {
		pad := strings.Repeat(" ", width-lipgloss.Width(p[0]))
		lines = append(lines, Dim(p[0]+":")+pad+" "+p[1])
	}
	return strings.Join(lines, "\n")
}
