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

func seedTerm(t *testing.T, db *sql.DB) *domain.Term {
	t.Helper()
	term := testutil.NewTestTerm(testutil.Date(2025, 1, 6), testutil.Date(2025, 5, 9))
	require.NoError(t, NewSQLiteTermRepo(db).Create(context.Background(), term))
	return term
}

func TestGroupRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGroupRepo(db)
	ctx := context.Background()
	term := seedTerm(t, db)

	g := testutil.NewTestGroup(term.ID, "TIDS", testutil.WithGroupNumbers(3, 2))
	require.NoError(t, repo.Create(ctx, g))

	fetched, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "TIDS3-2", fetched.GeneratedName)
	assert.Equal(t, 3, fetched.TermNumber)
	assert.Equal(t, 2, fetched.GroupNumber)
	assert.Equal(t, term.ID, fetched.TermID)
}

func TestGroupRepo_UnknownTerm_RejectedByForeignKey(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGroupRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestGroup("no-such-term", "TIDS"))
	require.Error(t, err)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestGroupRepo_ExistsIdentity(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGroupRepo(db)
	ctx := context.Background()
	term := seedTerm(t, db)

	g := testutil.NewTestGroup(term.ID, "TIDS", testutil.WithGroupInactive())
	require.NoError(t, repo.Create(ctx, g))

	// Inactive groups still hold their identity.
	exists, err := repo.ExistsIdentity(ctx, "TIDS", 1, 1, "")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsIdentity(ctx, "TIDS", 1, 1, g.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsIdentity(ctx, "IDGS", 1, 1, "")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestGroupRepo_DuplicateIdentity_IsStoreConflict(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGroupRepo(db)
	ctx := context.Background()
	term := seedTerm(t, db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestGroup(term.ID, "TIDS")))
	err := repo.Create(ctx, testutil.NewTestGroup(term.ID, "TIDS"))
	assert.ErrorIs(t, err, domain.ErrStoreConflict)
}

func TestGroupRepo_ListFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGroupRepo(db)
	ctx := context.Background()
	term := seedTerm(t, db)

	require.NoError(t, repo.Create(ctx, testutil.NewTestGroup(term.ID, "TIDS", testutil.WithGroupNumbers(1, 2))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestGroup(term.ID, "TIDS", testutil.WithGroupNumbers(1, 1))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestGroup(term.ID, "IDGS", testutil.WithGroupInactive())))

	all, err := repo.List(ctx, GroupFilter{TermID: term.ID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "IDGS1-1", all[0].GeneratedName)
	assert.Equal(t, "TIDS1-1", all[1].GeneratedName)
	assert.Equal(t, "TIDS1-2", all[2].GeneratedName)

	tids, err := repo.List(ctx, GroupFilter{Career: "TIDS"})
	require.NoError(t, err)
	assert.Len(t, tids, 2)

	active, err := repo.List(ctx, GroupFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Len(t, active, 2)
}

func TestGroupRepo_UpdateAndDelete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteGroupRepo(db)
	ctx := context.Background()
	term := seedTerm(t, db)

	g := testutil.NewTestGroup(term.ID, "TIDS")
	require.NoError(t, repo.Create(ctx, g))

	g.GroupNumber = 4
	g.GeneratedName = domain.GroupName(g.Career, g.TermNumber, g.GroupNumber)
	require.NoError(t, repo.Update(ctx, g))

	fetched, err := repo.GetByID(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, "TIDS1-4", fetched.GeneratedName)

	require.NoError(t, repo.Delete(ctx, g.ID))
	_, err = repo.GetByID(ctx, g.ID)
	assert.ErrorIs(t, err, domain.ErrUnknownGroup)
}
