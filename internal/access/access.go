// Package access decides who may touch a progress-tracking record.
package access

import "github.com/alexanderramin/aula/internal/domain"

type Operation string

const (
	OpRead   Operation = "read"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Standing is the actor's relationship to the record being touched.
type Standing string

const (
	StandingCoordinator    Standing = "coordinator"
	StandingModerator      Standing = "moderator"
	StandingOwnerProfessor Standing = "owner_professor"
	StandingOther          Standing = "other"
)

const (
	ReasonNotOwner       = "not_owner"
	ReasonModeratorScope = "moderator_scope"
)

// Decision records whether an operation is allowed and, if not, why.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision        { return Decision{Allowed: true} }
func deny(r string) Decision { return Decision{Allowed: false, Reason: r} }

// matrix defines an explicit decision for every Standing×Operation pair.
var matrix = map[Standing]map[Operation]Decision{
	StandingCoordinator: {
		OpRead:   allow(),
		OpCreate: allow(),
		OpUpdate: allow(),
		OpDelete: allow(),
	},
	StandingOwnerProfessor: {
		OpRead:   allow(),
		OpCreate: allow(),
		OpUpdate: allow(),
		OpDelete: allow(),
	},
	StandingModerator: {
		OpRead:   allow(),
		OpCreate: deny(ReasonModeratorScope),
		OpUpdate: allow(),
		OpDelete: deny(ReasonModeratorScope),
	},
	StandingOther: {
		OpRead:   deny(ReasonNotOwner),
		OpCreate: deny(ReasonNotOwner),
		OpUpdate: deny(ReasonNotOwner),
		OpDelete: deny(ReasonNotOwner),
	},
}

// StandingOf classifies the actor against the owning professor's id.
func StandingOf(role domain.Role, actorID, ownerID string) Standing {
	switch {
	case role == domain.RoleCoordinator:
		return StandingCoordinator
	case role == domain.RoleModerator:
		return StandingModerator
	case role.IsTeaching() && actorID != "" && actorID == ownerID:
		return StandingOwnerProfessor
	default:
		return StandingOther
	}
}

// Decide is the single source of truth for progress-tracking permissions,
// used identically for headers and line items.
func Decide(role domain.Role, actorID, ownerID string, op Operation) Decision {
	row, ok := matrix[StandingOf(role, actorID, ownerID)]
	if !ok {
		return deny(ReasonNotOwner)
	}
	d, ok := row[op]
	if !ok {
		return deny(ReasonNotOwner)
	}
	return d
}

// Check returns domain.ErrForbidden when the matrix denies the operation.
func Check(actor domain.Actor, ownerID string, op Operation) error {
	d := Decide(actor.Role, actor.UserID, ownerID, op)
	if d.Allowed {
		return nil
	}
	return domain.ErrForbidden.With("%s may not %s progress tracking (%s)", actor.Role, op, d.Reason)
}
