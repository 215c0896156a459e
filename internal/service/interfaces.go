package service

import (
	"context"
	"time"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
)

// Lookup contracts. Each manager depends only on the read side of the
// managers below it: Term → Group → AcademicLoad → Progress.

type TermLookup interface {
	Get(ctx context.Context, id string) (*domain.Term, error)
}

type GroupLookup interface {
	Get(ctx context.Context, id string) (*domain.Group, error)
}

type AcademicLoadLookup interface {
	Get(ctx context.Context, id string) (*domain.AcademicLoad, error)
}

// UserLookup resolves the professor referenced by an academic load.
type UserLookup interface {
	Get(ctx context.Context, id string) (*domain.User, error)
}

type CreateTermInput struct {
	StartDate time.Time `field:"start_date" validate:"required"`
	EndDate   time.Time `field:"end_date" validate:"required"`
}

// UpdateTermInput carries a partial update; nil fields keep the stored value.
type UpdateTermInput struct {
	StartDate *time.Time
	EndDate   *time.Time
	Active    *bool
}

type TermService interface {
	TermLookup
	Create(ctx context.Context, actor domain.Actor, in CreateTermInput) (*domain.Term, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateTermInput) (*domain.Term, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context) ([]*domain.Term, error)
	// Current returns the term that is Active at now.
	Current(ctx context.Context, now time.Time) (*domain.Term, error)
	State(t *domain.Term) domain.TermState
	ExportICal(ctx context.Context) (string, error)
}

type CreateGroupInput struct {
	Career      string `field:"career" validate:"required"`
	TermNumber  int    `field:"term_number" validate:"min=1,max=15"`
	GroupNumber int    `field:"group_number" validate:"min=1"`
	TermID      string `field:"term_id" validate:"required"`
}

type UpdateGroupInput struct {
	Career      *string `field:"career" validate:"omitnil,min=1"`
	TermNumber  *int    `field:"term_number" validate:"omitnil,min=1,max=15"`
	GroupNumber *int    `field:"group_number" validate:"omitnil,min=1"`
	TermID      *string `field:"term_id" validate:"omitnil,min=1"`
}

type GroupService interface {
	GroupLookup
	Create(ctx context.Context, actor domain.Actor, in CreateGroupInput) (*domain.Group, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateGroupInput) (*domain.Group, error)
	Deactivate(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error)
	Reactivate(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error)
	Delete(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, f repository.GroupFilter) ([]*domain.Group, error)
}

type AssignInput struct {
	ProfessorID string `field:"professor_id" validate:"required"`
	Career      string `field:"career" validate:"required"`
	Subject     string `field:"subject" validate:"required"`
	GroupID     string `field:"group_id" validate:"required"`
	IsTutor     bool   `field:"is_tutor"`
}

type UpdateLoadInput struct {
	ProfessorID *string `field:"professor_id" validate:"omitnil,min=1"`
	Career      *string `field:"career" validate:"omitnil,min=1"`
	Subject     *string `field:"subject" validate:"omitnil,min=1"`
	GroupID     *string `field:"group_id" validate:"omitnil,min=1"`
	IsTutor     *bool   `field:"is_tutor"`
}

type AcademicLoadService interface {
	AcademicLoadLookup
	Assign(ctx context.Context, actor domain.Actor, in AssignInput) (*domain.AcademicLoad, error)
	Update(ctx context.Context, actor domain.Actor, id string, in UpdateLoadInput) (*domain.AcademicLoad, error)
	Deactivate(ctx context.Context, actor domain.Actor, id string) (*domain.AcademicLoad, error)
	Reactivate(ctx context.Context, actor domain.Actor, id string) (*domain.AcademicLoad, error)
	Remove(ctx context.Context, actor domain.Actor, id string) error
	List(ctx context.Context, f repository.LoadFilter) ([]*domain.AcademicLoad, error)
}

type CreateHeaderInput struct {
	AcademicLoadID string `field:"academic_load_id" validate:"required"`
	// TermID defaults to the academic load's term when empty.
	TermID string `field:"term_id"`
}

type SetStatusInput struct {
	Status domain.ProgressStatus `field:"status" validate:"required,progress_status"`
}

type CreateLineInput struct {
	HeaderID          string              `field:"header_id" validate:"required"`
	Topic             string              `field:"topic" validate:"required"`
	WeekCompleted     int                 `field:"week_completed" validate:"min=1"`
	AdvanceState      domain.AdvanceState `field:"advance_state" validate:"required,advance_state"`
	IsLate            bool                `field:"is_late"`
	Justification     *string             `field:"justification"`
	CorrectiveActions *string             `field:"corrective_actions"`
	Evidence          *string             `field:"evidence"`
}

type UpdateLineInput struct {
	Topic             *string              `field:"topic" validate:"omitnil,min=1"`
	WeekCompleted     *int                 `field:"week_completed" validate:"omitnil,min=1"`
	AdvanceState      *domain.AdvanceState `field:"advance_state" validate:"omitnil,advance_state"`
	IsLate            *bool                `field:"is_late"`
	Justification     *string              `field:"justification"`
	CorrectiveActions *string              `field:"corrective_actions"`
	Evidence          *string              `field:"evidence"`
}

type ProgressService interface {
	CreateHeader(ctx context.Context, actor domain.Actor, in CreateHeaderInput) (*domain.ProgressHeader, error)
	GetHeader(ctx context.Context, actor domain.Actor, id string) (*domain.ProgressHeader, error)
	ListHeaders(ctx context.Context, actor domain.Actor, f repository.HeaderFilter) ([]*domain.ProgressHeader, error)
	SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.ProgressStatus) (*domain.ProgressHeader, error)
	DeleteHeader(ctx context.Context, actor domain.Actor, id string) error

	CreateLine(ctx context.Context, actor domain.Actor, in CreateLineInput) (*domain.ProgressLine, error)
	UpdateLine(ctx context.Context, actor domain.Actor, id string, in UpdateLineInput) (*domain.ProgressLine, error)
	DeleteLine(ctx context.Context, actor domain.Actor, id string) error
	ListLines(ctx context.Context, actor domain.Actor, headerID string) ([]*domain.ProgressLine, error)
}

type CreateUserInput struct {
	Name     string      `field:"name" validate:"required"`
	Email    string      `field:"email" validate:"required,email"`
	Role     domain.Role `field:"role" validate:"required,role"`
	Password string      `field:"password" validate:"required,min=8"`
}

type UserService interface {
	UserLookup
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// CheckPassword returns the user when password matches, ErrForbidden otherwise.
	CheckPassword(ctx context.Context, email, password string) (*domain.User, error)
	// ResolveActor turns a user id or email into the Actor commands run as.
	ResolveActor(ctx context.Context, key string) (domain.Actor, error)
}
