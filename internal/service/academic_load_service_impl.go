package service

import (
	"context"
	"time"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/db"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/google/uuid"
)

type academicLoadService struct {
	loads    repository.AcademicLoadRepo
	groups   GroupLookup
	terms    TermLookup
	users    UserLookup
	catalog  catalog.Lookup
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAcademicLoadService(
	loads repository.AcademicLoadRepo,
	groups GroupLookup,
	terms TermLookup,
	users UserLookup,
	lookup catalog.Lookup,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) AcademicLoadService {
	return &academicLoadService{
		loads:    loads,
		groups:   groups,
		terms:    terms,
		users:    users,
		catalog:  lookup,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Assign evaluates its checks in a fixed order and reports the first one
// violated: permission, professor role, catalog, group, duplicate
// assignment, subject ownership, term state, tutor conflicts.
func (s *academicLoadService) Assign(ctx context.Context, actor domain.Actor, in AssignInput) (load *domain.AcademicLoad, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"actor_id":     actor.UserID,
		"professor_id": in.ProfessorID,
		"group_id":     in.GroupID,
		"is_tutor":     in.IsTutor,
	}
	defer func() { observe(ctx, s.observer, "assign-load", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "assign academic loads"); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}

	load = &domain.AcademicLoad{
		ID:          uuid.New().String(),
		ProfessorID: in.ProfessorID,
		IsTutor:     in.IsTutor,
		Active:      true,
		CreatedAt:   startedAt,
		UpdatedAt:   startedAt,
	}
	if err = s.checkProfessor(ctx, load.ProfessorID); err != nil {
		return nil, err
	}
	if load.Career, load.Subject, err = s.resolveCourse(in.Career, in.Subject); err != nil {
		return nil, err
	}

	var group *domain.Group
	if group, err = s.groups.Get(ctx, in.GroupID); err != nil {
		return nil, err
	}
	load.GroupID = group.ID
	load.TermID = group.TermID

	if err = s.checkAssignment(ctx, load); err != nil {
		return nil, err
	}
	if err = s.checkTermOpen(ctx, load.TermID); err != nil {
		return nil, err
	}
	if load.IsTutor {
		if err = checkTutor(ctx, s.loads, load); err != nil {
			return nil, err
		}
	}

	if err = s.loads.Create(ctx, load); err != nil {
		return nil, err
	}
	fields["load_id"] = load.ID
	return load, nil
}

// Update merges the supplied fields over the stored record and re-runs only
// the checks whose inputs changed.
func (s *academicLoadService) Update(ctx context.Context, actor domain.Actor, id string, in UpdateLoadInput) (load *domain.AcademicLoad, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "load_id": id}
	defer func() { observe(ctx, s.observer, "update-load", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "update academic loads"); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}
	load, err = s.loads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	prev := *load

	if in.ProfessorID != nil && *in.ProfessorID != load.ProfessorID {
		if err = s.checkProfessor(ctx, *in.ProfessorID); err != nil {
			return nil, err
		}
		load.ProfessorID = *in.ProfessorID
	}
	if in.Career != nil || in.Subject != nil {
		career := domain.ValueOr(in.Career, load.Career)
		subject := domain.ValueOr(in.Subject, load.Subject)
		if load.Career, load.Subject, err = s.resolveCourse(career, subject); err != nil {
			return nil, err
		}
	}

	groupChanged := in.GroupID != nil && *in.GroupID != load.GroupID
	if groupChanged {
		var group *domain.Group
		if group, err = s.groups.Get(ctx, *in.GroupID); err != nil {
			return nil, err
		}
		load.GroupID = group.ID
		load.TermID = group.TermID
	}

	if !load.SameAssignment(&prev) {
		if err = s.checkAssignment(ctx, load); err != nil {
			return nil, err
		}
	}
	if groupChanged {
		if err = s.checkTermOpen(ctx, load.TermID); err != nil {
			return nil, err
		}
	}

	load.IsTutor = domain.ValueOr(in.IsTutor, load.IsTutor)
	tutorInputsChanged := load.IsTutor != prev.IsTutor || load.ProfessorID != prev.ProfessorID || groupChanged
	if load.IsTutor && load.Active && tutorInputsChanged {
		if err = checkTutor(ctx, s.loads, load); err != nil {
			return nil, err
		}
	}

	load.UpdatedAt = startedAt
	if !groupChanged {
		if err = s.loads.Update(ctx, load); err != nil {
			return nil, err
		}
		return load, nil
	}

	// A group move can change the term, and the progress header carries it too.
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteAcademicLoadRepo(tx).Update(ctx, load); err != nil {
			return err
		}
		_, err := repository.NewSQLiteProgressHeaderRepo(tx).SetTermForLoad(ctx, load.ID, load.TermID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return load, nil
}

func (s *academicLoadService) Deactivate(ctx context.Context, actor domain.Actor, id string) (*domain.AcademicLoad, error) {
	return s.setActive(ctx, actor, id, false)
}

// Reactivate re-runs the tutor checks for tutor loads, since another tutor
// may have been assigned while this one was inactive.
func (s *academicLoadService) Reactivate(ctx context.Context, actor domain.Actor, id string) (*domain.AcademicLoad, error) {
	return s.setActive(ctx, actor, id, true)
}

func (s *academicLoadService) setActive(ctx context.Context, actor domain.Actor, id string, active bool) (load *domain.AcademicLoad, err error) {
	startedAt := time.Now().UTC()
	name := "deactivate-load"
	if active {
		name = "reactivate-load"
	}
	fields := map[string]any{"actor_id": actor.UserID, "load_id": id}
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	if err = requireCoordinator(actor, "change academic load status"); err != nil {
		return nil, err
	}
	load, err = s.loads.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case active && load.Active:
		return nil, domain.ErrAlreadyActive.With("academic load %s is already active", load.ID)
	case !active && !load.Active:
		return nil, domain.ErrAlreadyInactive.With("academic load %s is already inactive", load.ID)
	}
	if active && load.IsTutor {
		if err = checkTutor(ctx, s.loads, load); err != nil {
			return nil, err
		}
	}

	load.Active = active
	load.UpdatedAt = startedAt
	if err = s.loads.Update(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

// Remove hard-deletes the load. Progress tracking that still references it
// is not checked; the store's foreign keys decide.
func (s *academicLoadService) Remove(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "load_id": id}
	defer func() { observe(ctx, s.observer, "remove-load", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "remove academic loads"); err != nil {
		return err
	}
	return s.loads.Delete(ctx, id)
}

func (s *academicLoadService) Get(ctx context.Context, id string) (*domain.AcademicLoad, error) {
	return s.loads.GetByID(ctx, id)
}

func (s *academicLoadService) List(ctx context.Context, f repository.LoadFilter) ([]*domain.AcademicLoad, error) {
	return s.loads.List(ctx, f)
}

// checkProfessor fails with InvalidProfessor when the user is missing or
// does not hold a teaching role.
func (s *academicLoadService) checkProfessor(ctx context.Context, professorID string) error {
	u, err := s.users.Get(ctx, professorID)
	if err != nil {
		if domain.KindOf(err) == domain.KindNotFound {
			return domain.ErrInvalidProfessor.With("user %s does not exist", professorID)
		}
		return err
	}
	if !u.Role.IsTeaching() {
		return domain.ErrInvalidProfessor.With("%s holds role %s", u.Name, u.Role)
	}
	return nil
}

func (s *academicLoadService) resolveCourse(career, subject string) (string, string, error) {
	code, err := resolveCareer(s.catalog, career)
	if err != nil {
		return "", "", err
	}
	name, err := resolveSubject(s.catalog, code, subject)
	if err != nil {
		return "", "", err
	}
	return code, name, nil
}

// checkAssignment covers both uniqueness rules. The indexes include inactive
// rows, so the pre-check does too.
func (s *academicLoadService) checkAssignment(ctx context.Context, load *domain.AcademicLoad) error {
	existing, err := s.loads.FindByGroupSubject(ctx, load.GroupID, load.Career, load.Subject, load.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		return nil
	}
	if existing.ProfessorID == load.ProfessorID {
		return domain.ErrDuplicateAssignment.With("professor already teaches %s to this group", load.Subject)
	}
	return domain.ErrSubjectAlreadyAssigned.With("%s is already taught to this group by another professor", load.Subject)
}

func (s *academicLoadService) checkTermOpen(ctx context.Context, termID string) error {
	term, err := s.terms.Get(ctx, termID)
	if err != nil {
		return err
	}
	if term.StateAt(time.Now()) == domain.TermFinished {
		return domain.ErrTermFinished.With("term %s has finished", term.GeneratedName)
	}
	return nil
}

// checkTutor counts only active tutor loads in the load's term. It takes the
// repository so group moves can run it inside their transaction.
func checkTutor(ctx context.Context, loads repository.AcademicLoadRepo, load *domain.AcademicLoad) error {
	busy, err := loads.ActiveTutorOtherGroup(ctx, load.ProfessorID, load.GroupID, load.TermID, load.ID)
	if err != nil {
		return err
	}
	if busy {
		return domain.ErrTutorConflictProfessor.With("professor already tutors another group this term")
	}

	taken, err := loads.ActiveTutorForGroup(ctx, load.GroupID, load.TermID, load.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrTutorConflictGroup.With("group already has a tutor this term")
	}
	return nil
}
