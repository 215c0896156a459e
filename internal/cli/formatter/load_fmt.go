package formatter

import "github.com/alexanderramin/aula/internal/domain"

// LoadNames resolves the ids an academic load references to display names.
type LoadNames struct {
	Professors map[string]string
	Groups     map[string]string
	Terms      map[string]string
}

// FormatLoadList renders academic loads.
func FormatLoadList(loads []*domain.AcademicLoad, names LoadNames) string {
	headers := []string{"ID", "PROFESSOR", "SUBJECT", "GROUP", "TERM", "TUTOR", "STATUS"}
	rows := make([][]string, 0, len(loads))
	for _, l := range loads {
		rows = append(rows, []string{
			TruncID(l.ID),
			nameOr(names.Professors, l.ProfessorID),
			Bold(l.Subject),
			nameOr(names.Groups, l.GroupID),
			nameOr(names.Terms, l.TermID),
			tutorMark(l.IsTutor),
			ActiveBadge(l.Active),
		})
	}
	return RenderBox("Academic loads", RenderTable(headers, rows))
}

// FormatLoad renders a single academic load card.
func FormatLoad(l *domain.AcademicLoad, names LoadNames) string {
	return RenderBox(l.Subject, keyValues([][2]string{
		{"ID", l.ID},
		{"Professor", nameOr(names.Professors, l.ProfessorID)},
		{"Career", l.Career},
		{"Group", nameOr(names.Groups, l.GroupID)},
		{"Term", nameOr(names.Terms, l.TermID)},
		{"Tutor", tutorMark(l.IsTutor)},
		{"Status", ActiveBadge(l.Active)},
	}))
}

func tutorMark(isTutor bool) string {
	if isTutor {
		return StyleYellow.Render("★ tutor")
	}
	return Dim("--")
}
