package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/aula/internal/catalog"
)

func FormatCareers(careers []catalog.Career) string {
	headers := []string{"CODE", "NAME", "SUBJECTS"}
	rows := make([][]string, 0, len(careers))
	for _, c := range careers {
		rows = append(rows, []string{
			Bold(c.Code),
			c.Name,
			fmt.Sprintf("%d", len(c.Subjects)),
		})
	}
	return RenderBox("Careers", RenderTable(headers, rows))
}

func FormatSubjects(c catalog.Career) string {
	headers := []string{"SUBJECT", "TOPICS"}
	rows := make([][]string, 0, len(c.Subjects))
	for _, s := range c.Subjects {
		rows = append(rows, []string{Bold(s.Name), fmt.Sprintf("%d", len(s.Topics))})
	}
	return RenderBox(c.Code+" subjects", RenderTable(headers, rows))
}

func FormatTopics(s catalog.Subject) string {
	lines := make([]string, 0, len(s.Topics))
	for i, t := range s.Topics {
		lines = append(lines, fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%2d.", i+1)), t))
	}
	return RenderBox(s.Name, strings.Join(lines, "\n"))
}
