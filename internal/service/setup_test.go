package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/alexanderramin/aula/internal/testutil"
	"github.com/stretchr/testify/require"
)

// testEnv wires every manager over one in-memory database.
type testEnv struct {
	db       *sql.DB
	catalog  *catalog.Index
	terms    TermService
	groups   GroupService
	loads    AcademicLoadService
	progress ProgressService
	users    UserService

	coordinator domain.Actor
	moderator   domain.Actor
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	idx, err := catalog.Default()
	require.NoError(t, err)

	userRepo := repository.NewSQLiteUserRepo(database)
	users := NewUserService(userRepo)
	terms := NewTermService(repository.NewSQLiteTermRepo(database), DefaultTermBounds())
	groups := NewGroupService(repository.NewSQLiteGroupRepo(database), terms, idx, testutil.NewTestUoW(database))
	loads := NewAcademicLoadService(repository.NewSQLiteAcademicLoadRepo(database), groups, terms, users, idx, testutil.NewTestUoW(database))
	progress := NewProgressService(
		repository.NewSQLiteProgressHeaderRepo(database),
		repository.NewSQLiteProgressLineRepo(database),
		loads, idx,
	)

	env := &testEnv{
		db:       database,
		catalog:  idx,
		terms:    terms,
		groups:   groups,
		loads:    loads,
		progress: progress,
		users:    users,
	}
	env.coordinator = testutil.ActorFor(env.addUser(t, domain.RoleCoordinator))
	env.moderator = testutil.ActorFor(env.addUser(t, domain.RoleModerator))
	return env
}

// addUser stores a user directly, skipping the bcrypt cost of UserService.Create.
func (e *testEnv) addUser(t *testing.T, role domain.Role) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(role)
	require.NoError(t, repository.NewSQLiteUserRepo(e.db).Create(context.Background(), u))
	return u
}

func (e *testEnv) professor(t *testing.T) domain.Actor {
	t.Helper()
	return testutil.ActorFor(e.addUser(t, domain.RoleFullTimeProfessor))
}

// termFrom creates a 120-day term starting offsetDays from today.
func (e *testEnv) termFrom(t *testing.T, offsetDays int) *domain.Term {
	t.Helper()
	start := domain.DateOnly(time.Now()).AddDate(0, 0, offsetDays)
	term, err := e.terms.Create(context.Background(), e.coordinator, CreateTermInput{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 120),
	})
	require.NoError(t, err)
	return term
}

func (e *testEnv) activeTerm(t *testing.T) *domain.Term   { return e.termFrom(t, -10) }
func (e *testEnv) finishedTerm(t *testing.T) *domain.Term { return e.termFrom(t, -400) }

func (e *testEnv) group(t *testing.T, termID string, termNumber, groupNumber int) *domain.Group {
	t.Helper()
	g, err := e.groups.Create(context.Background(), e.coordinator, CreateGroupInput{
		Career:      "TIDS",
		TermNumber:  termNumber,
		GroupNumber: groupNumber,
		TermID:      termID,
	})
	require.NoError(t, err)
	return g
}

func (e *testEnv) assign(t *testing.T, professorID, groupID, subject string, tutor bool) *domain.AcademicLoad {
	t.Helper()
	l, err := e.loads.Assign(context.Background(), e.coordinator, AssignInput{
		ProfessorID: professorID,
		Career:      "TIDS",
		Subject:     subject,
		GroupID:     groupID,
		IsTutor:     tutor,
	})
	require.NoError(t, err)
	return l
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }
func boolPtr(b bool) *bool    { return &b }
