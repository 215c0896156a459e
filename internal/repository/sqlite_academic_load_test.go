package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loadFixture struct {
	term  *domain.Term
	group *domain.Group
	prof  *domain.User
}

func seedLoadFixture(t *testing.T, db *sql.DB) loadFixture {
	t.Helper()
	ctx := context.Background()
	term := seedTerm(t, db)
	g := testutil.NewTestGroup(term.ID, "TIDS")
	require.NoError(t, NewSQLiteGroupRepo(db).Create(ctx, g))
	prof := testutil.NewTestUser(domain.RoleFullTimeProfessor)
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, prof))
	return loadFixture{term: term, group: g, prof: prof}
}

func TestAcademicLoadRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAcademicLoadRepo(db)
	ctx := context.Background()
	fx := seedLoadFixture(t, db)

	l := testutil.NewTestLoad(fx.prof.ID, fx.group, "Base de Datos", testutil.WithTutor())
	require.NoError(t, repo.Create(ctx, l))

	fetched, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, fx.term.ID, fetched.TermID)
	assert.Equal(t, "TIDS", fetched.Career)
	assert.True(t, fetched.IsTutor)
	assert.True(t, fetched.Active)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrUnknownAcademicLoad)
}

func TestAcademicLoadRepo_FindByGroupSubject(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAcademicLoadRepo(db)
	ctx := context.Background()
	fx := seedLoadFixture(t, db)

	l := testutil.NewTestLoad(fx.prof.ID, fx.group, "Base de Datos", testutil.WithLoadInactive())
	require.NoError(t, repo.Create(ctx, l))

	found, err := repo.FindByGroupSubject(ctx, fx.group.ID, "TIDS", "Base de Datos", "")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, l.ID, found.ID)

	found, err = repo.FindByGroupSubject(ctx, fx.group.ID, "TIDS", "Base de Datos", l.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.FindByGroupSubject(ctx, fx.group.ID, "TIDS", "Desarrollo Web", "")
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestAcademicLoadRepo_TutorQueries_CountOnlyActiveTutors(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAcademicLoadRepo(db)
	groups := NewSQLiteGroupRepo(db)
	ctx := context.Background()
	fx := seedLoadFixture(t, db)

	other := testutil.NewTestGroup(fx.term.ID, "TIDS", testutil.WithGroupNumbers(1, 2))
	require.NoError(t, groups.Create(ctx, other))

	inactive := testutil.NewTestLoad(fx.prof.ID, other, "Ingles I", testutil.WithTutor(), testutil.WithLoadInactive())
	require.NoError(t, repo.Create(ctx, inactive))

	busy, err := repo.ActiveTutorOtherGroup(ctx, fx.prof.ID, fx.group.ID, fx.term.ID, "")
	require.NoError(t, err)
	assert.False(t, busy, "inactive tutor loads do not count")

	tutor := testutil.NewTestLoad(fx.prof.ID, other, "Desarrollo Web", testutil.WithTutor())
	require.NoError(t, repo.Create(ctx, tutor))

	busy, err = repo.ActiveTutorOtherGroup(ctx, fx.prof.ID, fx.group.ID, fx.term.ID, "")
	require.NoError(t, err)
	assert.True(t, busy)

	// Tutoring the same group is not a conflict with another group.
	busy, err = repo.ActiveTutorOtherGroup(ctx, fx.prof.ID, other.ID, fx.term.ID, "")
	require.NoError(t, err)
	assert.False(t, busy)

	has, err := repo.ActiveTutorForGroup(ctx, other.ID, fx.term.ID, "")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = repo.ActiveTutorForGroup(ctx, other.ID, fx.term.ID, tutor.ID)
	require.NoError(t, err)
	assert.False(t, has)
}

func TestAcademicLoadRepo_DuplicateGroupSubject_IsStoreConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAcademicLoadRepo(db)
	ctx := context.Background()
	fx := seedLoadFixture(t, db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestLoad(fx.prof.ID, fx.group, "Base de Datos")))
	err := repo.Create(ctx, testutil.NewTestLoad(fx.prof.ID, fx.group, "Base de Datos"))
	assert.ErrorIs(t, err, domain.ErrStoreConflict)
}

func TestAcademicLoadRepo_SetTermForGroup(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAcademicLoadRepo(db)
	ctx := context.Background()
	fx := seedLoadFixture(t, db)

	next := testutil.NewTestTerm(testutil.Date(2025, 9, 1), testutil.Date(2025, 12, 19))
	require.NoError(t, NewSQLiteTermRepo(db).Create(ctx, next))

	require.NoError(t, repo.Create(ctx, testutil.NewTestLoad(fx.prof.ID, fx.group, "Base de Datos")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestLoad(fx.prof.ID, fx.group, "Desarrollo Web")))

	n, err := repo.SetTermForGroup(ctx, fx.group.ID, next.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	loads, err := repo.List(ctx, LoadFilter{TermID: next.ID})
	require.NoError(t, err)
	assert.Len(t, loads, 2)
}

func TestAcademicLoadRepo_ListFiltersAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteAcademicLoadRepo(db)
	ctx := context.Background()
	fx := seedLoadFixture(t, db)

	other := testutil.NewTestUser(domain.RoleAdjunctProfessor)
	require.NoError(t, NewSQLiteUserRepo(db).Create(ctx, other))

	a := testutil.NewTestLoad(fx.prof.ID, fx.group, "Base de Datos")
	b := testutil.NewTestLoad(other.ID, fx.group, "Ingles I", testutil.WithLoadInactive())
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	mine, err := repo.List(ctx, LoadFilter{ProfessorID: fx.prof.ID})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, a.ID, mine[0].ID)

	active, err := repo.List(ctx, LoadFilter{GroupID: fx.group.ID, ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 1)

	require.NoError(t, repo.Delete(ctx, b.ID))
	assert.ErrorIs(t, repo.Delete(ctx, b.ID), domain.ErrUnknownAcademicLoad)
}
