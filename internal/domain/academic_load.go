package domain

import "time"

// AcademicLoad assigns one professor to teach one subject to one group.
// TermID is copied from the group and must be recomputed whenever GroupID changes.
type AcademicLoad struct {
	ID          string
	ProfessorID string
	Career      string
	Subject     string
	GroupID     string
	TermID      string
	IsTutor     bool
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SameAssignment reports whether two loads bind the same professor, group,
// career and subject.
func (l *AcademicLoad) SameAssignment(other *AcademicLoad) bool {
	return l.ProfessorID == other.ProfessorID && l.SameGroupSubject(other)
}

// SameGroupSubject reports whether two loads teach the same subject to the same group.
func (l *AcademicLoad) SameGroupSubject(other *AcademicLoad) bool {
	return l.GroupID == other.GroupID && l.Career == other.Career && l.Subject == other.Subject
}
