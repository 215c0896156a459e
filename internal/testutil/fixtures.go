package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/google/uuid"
)

var testEmailCounter atomic.Int64

// Date returns midnight UTC on the given day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithUserName(name string) UserOption {
	return func(u *domain.User) {
		u.Name = name
	}
}

func NewTestUser(role domain.Role, opts ...UserOption) *domain.User {
	now := time.Now().UTC()
	n := testEmailCounter.Add(1)
	u := &domain.User{
		ID:           uuid.New().String(),
		Name:         fmt.Sprintf("%s %d", role, n),
		Email:        fmt.Sprintf("user%d@aula.test", n),
		Role:         role,
		PasswordHash: "x",
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ActorFor builds the Actor a command would run as for u.
func ActorFor(u *domain.User) domain.Actor {
	return domain.Actor{UserID: u.ID, Role: u.Role}
}

// Term options
type TermOption func(*domain.Term)

func WithTermInactive() TermOption {
	return func(t *domain.Term) {
		t.Active = false
	}
}

func NewTestTerm(start, end time.Time, opts ...TermOption) *domain.Term {
	now := time.Now().UTC()
	t := &domain.Term{
		ID:            uuid.New().String(),
		StartDate:     start,
		EndDate:       end,
		GeneratedName: domain.TermName(start, end),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Group options
type GroupOption func(*domain.Group)

func WithGroupNumbers(termNumber, groupNumber int) GroupOption {
	return func(g *domain.Group) {
		g.TermNumber = termNumber
		g.GroupNumber = groupNumber
	}
}

func WithGroupInactive() GroupOption {
	return func(g *domain.Group) {
		g.Active = false
	}
}

func NewTestGroup(termID, career string, opts ...GroupOption) *domain.Group {
	now := time.Now().UTC()
	g := &domain.Group{
		ID:          uuid.New().String(),
		Career:      career,
		TermNumber:  1,
		GroupNumber: 1,
		Active:      true,
		TermID:      termID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.GeneratedName = domain.GroupName(g.Career, g.TermNumber, g.GroupNumber)
	return g
}

// AcademicLoad options
type LoadOption func(*domain.AcademicLoad)

func WithTutor() LoadOption {
	return func(l *domain.AcademicLoad) {
		l.IsTutor = true
	}
}

func WithLoadInactive() LoadOption {
	return func(l *domain.AcademicLoad) {
		l.Active = false
	}
}

// NewTestLoad assigns professorID to teach subject to g, copying the group's
// career and term.
func NewTestLoad(professorID string, g *domain.Group, subject string, opts ...LoadOption) *domain.AcademicLoad {
	now := time.Now().UTC()
	l := &domain.AcademicLoad{
		ID:          uuid.New().String(),
		ProfessorID: professorID,
		Career:      g.Career,
		Subject:     subject,
		GroupID:     g.ID,
		TermID:      g.TermID,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func NewTestHeader(l *domain.AcademicLoad) *domain.ProgressHeader {
	now := time.Now().UTC()
	return &domain.ProgressHeader{
		ID:             uuid.New().String(),
		AcademicLoadID: l.ID,
		TermID:         l.TermID,
		Status:         domain.ProgressDraft,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// ProgressLine options
type LineOption func(*domain.ProgressLine)

func WithLate(justification string) LineOption {
	return func(l *domain.ProgressLine) {
		l.IsLate = true
		l.Justification = &justification
	}
}

func NewTestLine(headerID, topic string, week int, opts ...LineOption) *domain.ProgressLine {
	now := time.Now().UTC()
	l := &domain.ProgressLine{
		ID:            uuid.New().String(),
		HeaderID:      headerID,
		Topic:         topic,
		WeekCompleted: week,
		AdvanceState:  domain.AdvanceInProgress,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
