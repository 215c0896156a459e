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

type groupService struct {
	groups   repository.GroupRepo
	terms    TermLookup
	catalog  catalog.Lookup
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewGroupService(
	groups repository.GroupRepo,
	terms TermLookup,
	lookup catalog.Lookup,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) GroupService {
	return &groupService{
		groups:   groups,
		terms:    terms,
		catalog:  lookup,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *groupService) Create(ctx context.Context, actor domain.Actor, in CreateGroupInput) (group *domain.Group, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "term_id": in.TermID}
	defer func() { observe(ctx, s.observer, "create-group", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "create groups"); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}

	var career string
	if career, err = resolveCareer(s.catalog, in.Career); err != nil {
		return nil, err
	}
	if _, err = s.terms.Get(ctx, in.TermID); err != nil {
		return nil, err
	}
	if err = s.checkIdentity(ctx, career, in.TermNumber, in.GroupNumber, ""); err != nil {
		return nil, err
	}

	group = &domain.Group{
		ID:            uuid.New().String(),
		Career:        career,
		TermNumber:    in.TermNumber,
		GroupNumber:   in.GroupNumber,
		GeneratedName: domain.GroupName(career, in.TermNumber, in.GroupNumber),
		Active:        true,
		TermID:        in.TermID,
		CreatedAt:     startedAt,
		UpdatedAt:     startedAt,
	}
	if err = s.groups.Create(ctx, group); err != nil {
		return nil, err
	}
	fields["group_id"] = group.ID
	return group, nil
}

// Update re-validates the identity triple against every other group. A
// changed termId is pushed to the group's academic loads and their progress
// headers in the same transaction, and the moved tutor loads must still hold
// in the new term.
func (s *groupService) Update(ctx context.Context, actor domain.Actor, id string, in UpdateGroupInput) (group *domain.Group, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "group_id": id}
	defer func() { observe(ctx, s.observer, "update-group", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "update groups"); err != nil {
		return nil, err
	}
	if err = inputs.Struct(in); err != nil {
		return nil, err
	}
	group, err = s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Career != nil {
		if group.Career, err = resolveCareer(s.catalog, *in.Career); err != nil {
			return nil, err
		}
	}
	group.TermNumber = domain.ValueOr(in.TermNumber, group.TermNumber)
	group.GroupNumber = domain.ValueOr(in.GroupNumber, group.GroupNumber)

	termChanged := in.TermID != nil && *in.TermID != group.TermID
	if termChanged {
		if _, err = s.terms.Get(ctx, *in.TermID); err != nil {
			return nil, err
		}
		group.TermID = *in.TermID
	}
	if err = s.checkIdentity(ctx, group.Career, group.TermNumber, group.GroupNumber, group.ID); err != nil {
		return nil, err
	}

	group.GeneratedName = domain.GroupName(group.Career, group.TermNumber, group.GroupNumber)
	group.UpdatedAt = startedAt

	if !termChanged {
		if err = s.groups.Update(ctx, group); err != nil {
			return nil, err
		}
		return group, nil
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteGroupRepo(tx).Update(ctx, group); err != nil {
			return err
		}
		loads := repository.NewSQLiteAcademicLoadRepo(tx)
		n, err := loads.SetTermForGroup(ctx, group.ID, group.TermID)
		if err != nil {
			return err
		}
		fields["loads_moved"] = n
		if err := checkMovedTutors(ctx, loads, group.ID); err != nil {
			return err
		}
		h, err := repository.NewSQLiteProgressHeaderRepo(tx).SetTermForGroup(ctx, group.ID, group.TermID)
		if err != nil {
			return err
		}
		fields["headers_moved"] = h
		return nil
	})
	if err != nil {
		return nil, err
	}
	return group, nil
}

// checkMovedTutors re-runs the tutor checks for every active tutor load of
// groupID after its loads took the new term.
func checkMovedTutors(ctx context.Context, loads repository.AcademicLoadRepo, groupID string) error {
	moved, err := loads.List(ctx, repository.LoadFilter{GroupID: groupID, ActiveOnly: true})
	if err != nil {
		return err
	}
	for _, l := range moved {
		if !l.IsTutor {
			continue
		}
		if err := checkTutor(ctx, loads, l); err != nil {
			return err
		}
	}
	return nil
}

func (s *groupService) checkIdentity(ctx context.Context, career string, termNumber, groupNumber int, excludeID string) error {
	exists, err := s.groups.ExistsIdentity(ctx, career, termNumber, groupNumber, excludeID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrDuplicateGroup.With("group %s already exists", domain.GroupName(career, termNumber, groupNumber))
	}
	return nil
}

func (s *groupService) Deactivate(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error) {
	return s.setActive(ctx, actor, id, false)
}

func (s *groupService) Reactivate(ctx context.Context, actor domain.Actor, id string) (*domain.Group, error) {
	return s.setActive(ctx, actor, id, true)
}

func (s *groupService) setActive(ctx context.Context, actor domain.Actor, id string, active bool) (group *domain.Group, err error) {
	startedAt := time.Now().UTC()
	name := "deactivate-group"
	if active {
		name = "reactivate-group"
	}
	fields := map[string]any{"actor_id": actor.UserID, "group_id": id}
	defer func() { observe(ctx, s.observer, name, startedAt, fields, err) }()

	if err = requireCoordinator(actor, "change group status"); err != nil {
		return nil, err
	}
	group, err = s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	switch {
	case active && group.Active:
		return nil, domain.ErrAlreadyActive.With("group %s is already active", group.GeneratedName)
	case !active && !group.Active:
		return nil, domain.ErrAlreadyInactive.With("group %s is already inactive", group.GeneratedName)
	}

	group.Active = active
	group.UpdatedAt = startedAt
	if err = s.groups.Update(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

// Delete removes the group without checking for academic loads that still
// reference it; the store's foreign keys decide.
func (s *groupService) Delete(ctx context.Context, actor domain.Actor, id string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"actor_id": actor.UserID, "group_id": id}
	defer func() { observe(ctx, s.observer, "delete-group", startedAt, fields, err) }()

	if err = requireCoordinator(actor, "delete groups"); err != nil {
		return err
	}
	return s.groups.Delete(ctx, id)
}

func (s *groupService) Get(ctx context.Context, id string) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

func (s *groupService) List(ctx context.Context, f repository.GroupFilter) ([]*domain.Group, error) {
	if f.Career != "" {
		if code, err := resolveCareer(s.catalog, f.Career); err == nil {
			f.Career = code
		}
	}
	return s.groups.List(ctx, f)
}
