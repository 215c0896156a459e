package access

import (
	"testing"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const owner = "prof-owner"

type actorCase struct {
	name    string
	role    domain.Role
	actorID string
}

var actors = []actorCase{
	{"coordinator", domain.RoleCoordinator, "coord-1"},
	{"moderator", domain.RoleModerator, "mod-1"},
	{"owning full-time professor", domain.RoleFullTimeProfessor, owner},
	{"owning adjunct professor", domain.RoleAdjunctProfessor, owner},
	{"other professor", domain.RoleFullTimeProfessor, "prof-other"},
	{"student with owner id", domain.RoleStudent, owner},
}

func TestDecide_Matrix(t *testing.T) {
	want := map[string]map[Operation]bool{
		"coordinator":                {OpRead: true, OpCreate: true, OpUpdate: true, OpDelete: true},
		"moderator":                  {OpRead: true, OpCreate: false, OpUpdate: true, OpDelete: false},
		"owning full-time professor": {OpRead: true, OpCreate: true, OpUpdate: true, OpDelete: true},
		"owning adjunct professor":   {OpRead: true, OpCreate: true, OpUpdate: true, OpDelete: true},
		"other professor":            {OpRead: false, OpCreate: false, OpUpdate: false, OpDelete: false},
		"student with owner id":      {OpRead: false, OpCreate: false, OpUpdate: false, OpDelete: false},
	}

	for _, a := range actors {
		for _, op := range []Operation{OpRead, OpCreate, OpUpdate, OpDelete} {
			t.Run(a.name+"/"+string(op), func(t *testing.T) {
				d := Decide(a.role, a.actorID, owner, op)
				assert.Equal(t, want[a.name][op], d.Allowed)
				if !d.Allowed {
					assert.NotEmpty(t, d.Reason)
				}
			})
		}
	}
}

func TestDecide_EveryStandingHasEveryOperation(t *testing.T) {
	for standing, row := range matrix {
		for _, op := range []Operation{OpRead, OpCreate, OpUpdate, OpDelete} {
			_, ok := row[op]
			assert.True(t, ok, "standing %s missing decision for %s", standing, op)
		}
	}
}

func TestStandingOf_EmptyActorIsNeverOwner(t *testing.T) {
	assert.Equal(t, StandingOther, StandingOf(domain.RoleFullTimeProfessor, "", ""))
}

func TestCheck_ModeratorDeleteIsForbidden(t *testing.T) {
	err := Check(domain.Actor{UserID: "mod-1", Role: domain.RoleModerator}, owner, OpDelete)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))

	assert.NoError(t, Check(domain.Actor{UserID: owner, Role: domain.RoleAdjunctProfessor}, owner, OpUpdate))
}
