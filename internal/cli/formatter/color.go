package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
)

// TermStateBadge renders a term's lifecycle state.
func TermStateBadge(state domain.TermState) string {
	switch state {
	case domain.TermActive:
		return StyleGreen.Render("● Active")
	case domain.TermUpcoming:
		return StyleBlue.Render("○ Upcoming")
	case domain.TermFinished:
		return StyleDim.Render("✔ Finished")
	default:
		return StyleDim.Render(string(state))
	}
}

// ProgressStatusPill renders a progress header's review status.
func ProgressStatusPill(status domain.ProgressStatus) string {
	switch status {
	case domain.ProgressDraft:
		return StyleDim.Render("○ Draft")
	case domain.ProgressSubmitted:
		return StyleBlue.Render("● Submitted")
	case domain.ProgressReviewed:
		return StylePurple.Render("◆ Reviewed")
	case domain.ProgressApproved:
		return StyleGreen.Render("✔ Approved")
	case domain.ProgressRejected:
		return StyleRed.Render("✖ Rejected")
	default:
		return StyleDim.Render(string(status))
	}
}

// AdvanceStateBadge renders the advance state of a progress line.
func AdvanceStateBadge(state domain.AdvanceState) string {
	switch state {
	case domain.AdvanceCompleted:
		return StyleGreen.Render("✔ Completed")
	case domain.AdvanceInProgress:
		return StyleBlue.Render("● In progress")
	case domain.AdvanceDelayed:
		return StyleYellow.Render("▲ Delayed")
	case domain.AdvanceNotStarted:
		return StyleDim.Render("○ Not started")
	default:
		return StyleDim.Render(string(state))
	}
}

// ActiveBadge renders the soft-delete flag shared by groups, loads and users.
func ActiveBadge(active bool) string {
	if active {
		return StyleGreen.Render("active")
	}
	return StyleDim.Render("inactive")
}

// RoleBadge renders a role as a human label.
func RoleBadge(role domain.Role) string {
	label := strings.ReplaceAll(string(role), "_", " ")
	switch role {
	case domain.RoleCoordinator:
		return StyleHeader.Render(label)
	case domain.RoleModerator:
		return StylePurple.Render(label)
	case domain.RoleStudent:
		return StyleDim.Render(label)
	default:
		return StyleFg.Render(label)
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

func Dim(text string) string {
	return StyleDim.Render(text)
}

func Bold(text string) string {
	return StyleBold.Render(text)
}
