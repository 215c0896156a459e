package service

import (
	"context"
	"time"

	"github.com/alexanderramin/aula/internal/access"
	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/google/uuid"
)

type progressService struct {
	headers  repository.ProgressHeaderRepo
	lines    repository.ProgressLineRepo
	loads    AcademicLoadLookup
	catalog  catalog.Lookup
	observer UseCaseObserver
}

func NewProgressService(
	headers repository.ProgressHeaderRepo,
	lines repository.ProgressLineRepo,
	loads AcademicLoadLookup,
	lookup catalog.Lookup,
	observers ...UseCaseObserver,
) ProgressService {
	return &progressService{
		headers:  headers,
		lines:    lines,
		loads:    loads,
		catalog:  lookup,
		observer: useCaseObserverOrNoop(observers),
	}
}

// CreateHeader opens progress tracking for an academic load. Only a
// coordinator may do so, and each load gets at most one header.
func (s *progressService) CreateHeader(ctx context.Context, actor domain.Actor, in CreateHeaderInput) (header *domain.ProgressHeader, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "load_id": in.AcademicLoadID}
	defer func() { observe(ctx, s.observer, "create-progress-header", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "create progress tracking"); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}

	var load *domain.AcademicLoad
	if load, err = s.loads.Get(ctx, in.AcademicLoadID); err != nil {
		return nil, err
	}
	termID := domain.Coalesce(in.TermID, load.TermID)
	if termID != load.TermID {
		return nil, domain.ErrTermMismatch.With("academic load belongs to term %s, not %s", load.TermID, termID)
	}

	var exists bool
	if exists, err = s.headers.ExistsForLoad(ctx, load.ID); err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateProgress.With("academic load %s already has progress tracking", load.ID)
	}

	header = &domain.ProgressHeader{
		ID:             uuid.New().String(),
		AcademicLoadID: load.ID,
		TermID:         termID,
		Status:         domain.ProgressDraft,
		CreatedAt:      startedAt,
		UpdatedAt:      startedAt,
	}
	if err = s.headers.Create(ctx, header); err != nil {
		return nil, err
	}
	fields["header_id"] = header.ID
	return header, nil
}

func (s *progressService) GetHeader(ctx context.Context, actor domain.Actor, id string) (*domain.ProgressHeader, error) {
	header, _, err := s.authorizeHeader(ctx, actor, id, access.OpRead)
	if err != nil {
		return nil, err
	}
	return header, nil
}

// ListHeaders shows coordinators and moderators everything; professors only
// ever see headers of their own loads.
func (s *progressService) ListHeaders(ctx context.Context, actor domain.Actor, f repository.HeaderFilter) ([]*domain.ProgressHeader, error) {
	switch {
	case actor.Role == domain.RoleCoordinator || actor.Role == domain.RoleModerator:
	case actor.Role.IsTeaching():
		f.ProfessorID = actor.UserID
	default:
		return nil, domain.ErrForbidden.With("%s may not read progress tracking", roleOrAnonymous(actor))
	}
	return s.headers.List(ctx, f)
}

// SetStatus applies any status; the forward path is advisory and a change
// outside it is only flagged to the observer.
func (s *progressService) SetStatus(ctx context.Context, actor domain.Actor, id string, status domain.ProgressStatus) (header *domain.ProgressHeader, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "header_id": id, "status": string(status)}
	defer func() { observe(ctx, s.observer, "set-progress-status", startedAt, fields, err) }()

	if header, _, err = s.authorizeHeader(ctx, actor, id, access.OpUpdate); err != nil {
		return nil, err
	}
	if err = inputs.Struct(SetStatusInput{Status: status}); err != nil {
		return nil, err
	}

	fields["from"] = string(header.Status)
	if !domain.OnStatusPath(header.Status, status) {
		fields[fieldOffPath] = true
	}
	header.ApplyStatus(status, actor.UserID, startedAt)
	if err = s.headers.Update(ctx, header); err != nil {
		return nil, err
	}
	return header, nil
}

// DeleteHeader removes the header and, through the store, all its lines.
func (s *progressService) DeleteHeader(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "header_id": id}
	defer func() { observe(ctx, s.observer, "delete-progress-header", startedAt, fields, err) }()

	if _, _, err = s.authorizeHeader(ctx, actor, id, access.OpDelete); err != nil {
		return err
	}
	return s.headers.Delete(ctx, id)
}

func (s *progressService) CreateLine(ctx context.Context, actor domain.Actor, in CreateLineInput) (line *domain.ProgressLine, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "header_id": in.HeaderID}
	defer func() { observe(ctx, s.observer, "create-progress-line", startedAt, fields, err) }()

	var load *domain.AcademicLoad
	if _, load, err = s.authorizeHeader(ctx, actor, in.HeaderID, access.OpCreate); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}
	var topic string
	if topic, err = s.resolveTopic(load, in.Topic); err != nil {
		return nil, err
	}

	line = &domain.ProgressLine{
		ID:                uuid.New().String(),
		HeaderID:          in.HeaderID,
		Topic:             topic,
		WeekCompleted:     in.WeekCompleted,
		AdvanceState:      in.AdvanceState,
		IsLate:            in.IsLate,
		Justification:     in.Justification,
		CorrectiveActions: in.CorrectiveActions,
		Evidence:          in.Evidence,
		CreatedAt:         startedAt,
		UpdatedAt:         startedAt,
	}
	if err = s.lines.Create(ctx, line); err != nil {
		return nil, err
	}
	fields["line_id"] = line.ID
	return line, nil
}

// UpdateLine patches the supplied fields. Only a changed topic is
// re-validated; isLate is stored exactly as given.
func (s *progressService) UpdateLine(ctx context.Context, actor domain.Actor, id string, in UpdateLineInput) (line *domain.ProgressLine, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "line_id": id}
	defer func() { observe(ctx, s.observer, "update-progress-line", startedAt, fields, err) }()

	if line, err = s.lines.GetByID(ctx, id); err != nil {
		return nil, err
	}
	var load *domain.AcademicLoad
	if _, load, err = s.authorizeHeader(ctx, actor, line.HeaderID, access.OpUpdate); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}

	if in.Topic != nil && *in.Topic != line.Topic {
		if line.Topic, err = s.resolveTopic(load, *in.Topic); err != nil {
			return nil, err
		}
	}
	line.WeekCompleted = domain.ValueOr(in.WeekCompleted, line.WeekCompleted)
	if in.AdvanceState != nil {
		line.AdvanceState = *in.AdvanceState
	}
	line.IsLate = domain.ValueOr(in.IsLate, line.IsLate)
	if in.Justification != nil {
		line.Justification = in.Justification
	}
	if in.CorrectiveActions != nil {
		line.CorrectiveActions = in.CorrectiveActions
	}
	if in.Evidence != nil {
		line.Evidence = in.Evidence
	}

	line.UpdatedAt = startedAt
	if err = s.lines.Update(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *progressService) DeleteLine(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "line_id": id}
	defer func() { observe(ctx, s.observer, "delete-progress-line", startedAt, fields, err) }()

	var line *domain.ProgressLine
	if line, err = s.lines.GetByID(ctx, id); err != nil {
		return err
	}
	if _, _, err = s.authorizeHeader(ctx, actor, line.HeaderID, access.OpDelete); err != nil {
		return err
	}
	return s.lines.Delete(ctx, id)
}

func (s *progressService) ListLines(ctx context.Context, actor domain.Actor, headerID string) ([]*domain.ProgressLine, error) {
	if _, _, err := s.authorizeHeader(ctx, actor, headerID, access.OpRead); err != nil {
		return nil, err
	}
	return s.lines.ListByHeader(ctx, headerID)
}

// authorizeHeader resolves the header and its load, then runs the
// permission matrix against the load's professor.
func (s *progressService) authorizeHeader(ctx context.Context, actor domain.Actor, headerID string, op access.Operation) (*domain.ProgressHeader, *domain.AcademicLoad, error) {
	header, err := s.headers.GetByID(ctx, headerID)
	if err != nil {
		return nil, nil, err
	}
	load, err := s.loads.Get(ctx, header.AcademicLoadID)
	if err != nil {
		return nil, nil, err
	}
	if err := access.Check(actor, load.ProfessorID, op); err != nil {
		return nil, nil, err
	}
	return header, load, nil
}

// resolveTopic returns the topic in its catalog spelling.
func (s *progressService) resolveTopic(load *domain.AcademicLoad, topic string) (string, error) {
	name, ok := s.catalog.Topic(load.Career, load.Subject, topic)
	if !ok {
		return "", domain.ErrUnknownTopic.With("topic %q is not part of %s", topic, load.Subject)
	}
	return name, nil
}
