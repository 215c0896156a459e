package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/aula/internal/calendar"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/google/uuid"
)

// TermBounds is the inclusive range of accepted term durations in days.
type TermBounds struct {
	MinDays int
	MaxDays int
}

func DefaultTermBounds() TermBounds {
	return TermBounds{MinDays: domain.DefaultMinTermDays, MaxDays: domain.DefaultMaxTermDays}
}

type termService struct {
	terms    repository.TermRepo
	bounds   TermBounds
	observer UseCaseObserver
}

func NewTermService(terms repository.TermRepo, bounds TermBounds, observers ...UseCaseObserver) TermService {
	return &termService{
		terms:    terms,
		bounds:   bounds,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *termService) Create(ctx context.Context, actor domain.Actor, in CreateTermInput) (term *domain.Term, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID}
	defer func() { observe(ctx, s.observer, "create-term", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "create terms"); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}

	start, end := domain.DateOnly(in.StartDate), domain.DateOnly(in.EndDate)
	if err = s.checkRange(ctx, start, end, ""); err != nil {
		return nil, err
	}

	term = &domain.Term{
		ID:            uuid.New().String(),
		StartDate:     start,
		EndDate:       end,
		GeneratedName: domain.TermName(start, end),
		Active:        true,
		CreatedAt:     startedAt,
		UpdatedAt:     startedAt,
	}
	if err = s.terms.Create(ctx, term); err != nil {
		return nil, err
	}
	fields["term_id"] = term.ID
	return term, nil
}

func (s *termService) Update(ctx context.Context, actor domain.Actor, id string, in UpdateTermInput) (term *domain.Term, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "term_id": id}
	defer func() { observe(ctx, s.observer, "update-term", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "update terms"); err != nil {
		return nil, err
	}
	term, err = s.terms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.StartDate != nil {
		term.StartDate = domain.DateOnly(*in.StartDate)
	}
	if in.EndDate != nil {
		term.EndDate = domain.DateOnly(*in.EndDate)
	}
	if in.Active != nil {
		term.Active = *in.Active
	}
	if err = s.checkRange(ctx, term.StartDate, term.EndDate, term.ID); err != nil {
		return nil, err
	}

	term.GeneratedName = domain.TermName(term.StartDate, term.EndDate)
	term.UpdatedAt = startedAt
	if err = s.terms.Update(ctx, term); err != nil {
		return nil, err
	}
	return term, nil
}

// checkRange enforces the duration bounds and non-overlap against every
// stored term except excludeID.
func (s *termService) checkRange(ctx context.Context, start, end time.Time, excludeID string) error {
	days := domain.DaysBetween(start, end)
	if days < s.bounds.MinDays || days > s.bounds.MaxDays {
		return domain.ErrInvalidDuration.With("term spans %d days, must be between %d and %d",
			days, s.bounds.MinDays, s.bounds.MaxDays)
	}

	overlapping, err := s.terms.ListOverlapping(ctx, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return domain.ErrOverlap.With("term overlaps %s", overlapping[0].GeneratedName)
	}
	return nil
}

// Delete removes the term without checking for groups that still reference it.
func (s *termService) Delete(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "term_id": id}
	defer func() { observe(ctx, s.observer, "delete-term", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "delete terms"); err != nil {
		return err
	}
	return s.terms.Delete(ctx, id)
}

func (s *termService) Get(ctx context.Context, id string) (*domain.Term, error) {
	return s.terms.GetByID(ctx, id)
}

func (s *termService) List(ctx context.Context) ([]*domain.Term, error) {
	return s.terms.List(ctx)
}

func (s *termService) Current(ctx context.Context, now time.Time) (*domain.Term, error) {
	day := domain.DateOnly(now)
	terms, err := s.terms.ListOverlapping(ctx, day, day, "")
	if err != nil {
		return nil, err
	}
	if len(terms) == 0 {
		return nil, domain.ErrUnknownTerm.With("no term is active on %s", day.Format("2006-01-02"))
	}
	return terms[0], nil
}

func (s *termService) State(t *domain.Term) domain.TermState {
	return t.StateAt(time.Now())
}

func (s *termService) ExportICal(ctx context.Context) (string, error) {
	terms, err := s.terms.List(ctx)
	if err != nil {
		return "", fmt.Errorf("loading terms for export: %w", err)
	}
	return calendar.ExportTerms(terms, time.Now()), nil
}
