package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/aula/internal/domain"
)

// GroupFilter narrows group listings. Zero values match everything.
type GroupFilter struct {
	TermID     string
	Career     string
	ActiveOnly bool
}

// LoadFilter narrows academic-load listings. Zero values match everything.
type LoadFilter struct {
	ProfessorID string
	GroupID     string
	TermID      string
	ActiveOnly  bool
}

// HeaderFilter narrows progress-header listings. ProfessorID joins through
// the owning academic load.
type HeaderFilter struct {
	TermID      string
	ProfessorID string
	Status      domain.ProgressStatus
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

type TermRepo interface {
	Create(ctx context.Context, t *domain.Term) error
	GetByID(ctx context.Context, id string) (*domain.Term, error)
	List(ctx context.Context) ([]*domain.Term, error)
	// ListOverlapping returns terms whose closed [start, end] range intersects
	// the given one, skipping excludeID.
	ListOverlapping(ctx context.Context, start, end time.Time, excludeID string) ([]*domain.Term, error)
	Update(ctx context.Context, t *domain.Term) error
	Delete(ctx context.Context, id string) error
}

type GroupRepo interface {
	Create(ctx context.Context, g *domain.Group) error
	GetByID(ctx context.Context, id string) (*domain.Group, error)
	List(ctx context.Context, f GroupFilter) ([]*domain.Group, error)
	// ExistsIdentity reports whether another group holds the
	// (career, termNumber, groupNumber) triple.
	ExistsIdentity(ctx context.Context, career string, termNumber, groupNumber int, excludeID string) (bool, error)
	Update(ctx context.Context, g *domain.Group) error
	Delete(ctx context.Context, id string) error
}

type AcademicLoadRepo interface {
	Create(ctx context.Context, l *domain.AcademicLoad) error
	GetByID(ctx context.Context, id string) (*domain.AcademicLoad, error)
	List(ctx context.Context, f LoadFilter) ([]*domain.AcademicLoad, error)
	// FindByGroupSubject returns the load teaching subject to group, or nil.
	FindByGroupSubject(ctx context.Context, groupID, career, subject, excludeID string) (*domain.AcademicLoad, error)
	// ActiveTutorOtherGroup reports whether the professor tutors a group
	// other than groupID during termID.
	ActiveTutorOtherGroup(ctx context.Context, professorID, groupID, termID, excludeID string) (bool, error)
	// ActiveTutorForGroup reports whether groupID already has a tutor during termID.
	ActiveTutorForGroup(ctx context.Context, groupID, termID, excludeID string) (bool, error)
	Update(ctx context.Context, l *domain.AcademicLoad) error
	// SetTermForGroup rewrites the denormalized term of every load in groupID.
	SetTermForGroup(ctx context.Context, groupID, termID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type ProgressHeaderRepo interface {
	Create(ctx context.Context, h *domain.ProgressHeader) error
	GetByID(ctx context.Context, id string) (*domain.ProgressHeader, error)
	ExistsForLoad(ctx context.Context, academicLoadID string) (bool, error)
	List(ctx context.Context, f HeaderFilter) ([]*domain.ProgressHeader, error)
	Update(ctx context.Context, h *domain.ProgressHeader) error
	// SetTermForLoad and SetTermForGroup keep the header's termId equal to
	// its load's after the load moves.
	SetTermForLoad(ctx context.Context, academicLoadID, termID string) (int64, error)
	SetTermForGroup(ctx context.Context, groupID, termID string) (int64, error)
	Delete(ctx context.Context, id string) error
}

type ProgressLineRepo interface {
	Create(ctx context.Context, l *domain.ProgressLine) error
	GetByID(ctx context.Context, id string) (*domain.ProgressLine, error)
	ListByHeader(ctx context.Context, headerID string) ([]*domain.ProgressLine, error)
	Update(ctx context.Context, l *domain.ProgressLine) error
	Delete(ctx context.Context, id string) error
}
