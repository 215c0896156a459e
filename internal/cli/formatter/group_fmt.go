package formatter

import (
	"fmt"

	"github.com/alexanderramin/aula/internal/domain"
)

// FormatGroupList renders groups. termNames maps term id to display name;
// unknown ids fall back to the truncated id.
func FormatGroupList(groups []*domain.Group, termNames map[string]string) string {
	headers := []string{"ID", "NAME", "CAREER", "TERM #", "GROUP #", "TERM", "STATUS"}
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			TruncID(g.ID),
			Bold(g.GeneratedName),
			g.Career,
			fmt.Sprintf("%d", g.TermNumber),
			fmt.Sprintf("%d", g.GroupNumber),
			nameOr(termNames, g.TermID),
			ActiveBadge(g.Active),
		})
	}
	return RenderBox("Groups", RenderTable(headers, rows))
}

// FormatGroup renders a single group card.
func FormatGroup(g *domain.Group, termName string) string {
	if termName == "" {
		termName = g.TermID
	}
	return RenderBox(g.GeneratedName, keyValues([][2]string{
		{"ID", g.ID},
		{"Career", g.Career},
		{"Term number", fmt.Sprintf("%d", g.TermNumber)},
		{"Group number", fmt.Sprintf("%d", g.GroupNumber)},
		{"Term", termName},
		{"Status", ActiveBadge(g.Active)},
	}))
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return TruncID(id)
}
