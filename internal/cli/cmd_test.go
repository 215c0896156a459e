package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/alexanderramin/aula/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cliEnv wires a full App backed by an in-memory DB for CLI integration tests.
type cliEnv struct {
	app         *App
	users       repository.UserRepo
	coordinator *domain.User
}

func testApp(t *testing.T) *cliEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	idx, err := catalog.Default()
	require.NoError(t, err)

	userRepo := repository.NewSQLiteUserRepo(database)
	users := service.NewUserService(userRepo)
	terms := service.NewTermService(repository.NewSQLiteTermRepo(database), service.DefaultTermBounds())
	groups := service.NewGroupService(repository.NewSQLiteGroupRepo(database), terms, idx, testutil.NewTestUoW(database))
	loads := service.NewAcademicLoadService(repository.NewSQLiteAcademicLoadRepo(database), groups, terms, users, idx, testutil.NewTestUoW(database))
	progress := service.NewProgressService(
		repository.NewSQLiteProgressHeaderRepo(database),
		repository.NewSQLiteProgressLineRepo(database),
		loads, idx,
	)

	env := &cliEnv{
		app: &App{
			Terms:    terms,
			Groups:   groups,
			Loads:    loads,
			Progress: progress,
			Users:    users,
			Catalog:  idx,
		},
		users: userRepo,
	}
	env.coordinator = env.addUser(t, domain.RoleCoordinator)
	return env
}

func (e *cliEnv) addUser(t *testing.T, role domain.Role, opts ...testutil.UserOption) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(role, opts...)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}

// activeTerm creates a term in progress today through the service.
func (e *cliEnv) activeTerm(t *testing.T) *domain.Term {
	t.Helper()
	start := domain.DateOnly(time.Now()).AddDate(0, 0, -10)
	term, err := e.app.Terms.Create(context.Background(), testutil.ActorFor(e.coordinator), service.CreateTermInput{
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 120),
	})
	require.NoError(t, err)
	return term
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// --- root ---

func TestRootCmd_NoArgs_ShowsHelp(t *testing.T) {
	env := testApp(t)

	output, err := executeCmd(t, env.app)
	require.NoError(t, err)
	assert.Contains(t, output, "aula")
	assert.Contains(t, output, "progress")
}

func TestRootCmd_MissingActorIsForbidden(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "term", "create", "--start", "2025-01-06", "--end", "2025-05-09")
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestRootCmd_UnknownActor(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "--as", "nobody@aula.test", "term", "list")
	// term list is open to everyone; the flag is only resolved by commands that need it.
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "--as", "nobody@aula.test", "term", "create", "--start", "2025-01-06", "--end", "2025-05-09")
	require.Error(t, err)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

// --- term ---

func TestTermCmd_CreateListGet(t *testing.T) {
	env := testApp(t)
	env.app.Now = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"term", "create", "--start", "2025-01-06", "--end", "2025-05-09")
	require.NoError(t, err)
	assert.Contains(t, out, "Created term Jan 2025 - May 2025")

	out, err = executeCmd(t, env.app, "term", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 2025 - May 2025")
	assert.Contains(t, out, "Active")
	assert.Contains(t, out, "123")

	out, err = executeCmd(t, env.app, "term", "current")
	require.NoError(t, err)
	assert.Contains(t, out, "Jan 2025 - May 2025")
}

func TestTermCmd_DurationOutOfRange(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"term", "create", "--start", "2025-01-06", "--end", "2025-04-09")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidDuration)
}

func TestTermCmd_InvalidDateFlag(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"term", "create", "--start", "06/01/2025", "--end", "2025-05-09")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected YYYY-MM-DD")
}

func TestTermCmd_MissingDatesReportFields(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email, "term", "create")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTermCmd_CurrentWithoutTermIsNotFound(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "term", "current")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnknownTerm)
}

func TestTermCmd_UpdateByIDPrefix(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"term", "update", term.ID[:8], "--active=false")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated term")

	stored, err := env.app.Terms.Get(context.Background(), term.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)
	assert.True(t, stored.StartDate.Equal(term.StartDate), "unset flags keep their value")
}

func TestTermCmd_ICalToFile(t *testing.T) {
	env := testApp(t)
	env.activeTerm(t)
	path := filepath.Join(t.TempDir(), "terms.ics")

	_, err := executeCmd(t, env.app, "term", "ical", "-o", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "BEGIN:VCALENDAR")
	assert.Contains(t, string(data), "BEGIN:VEVENT")
}

// --- group ---

func TestGroupCmd_CreateByCareerNameAndGetByGeneratedName(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"group", "create", "--career", "tids", "--term-number", "1", "--group-number", "2", "--term", term.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Created group TIDS1-2")

	out, err = executeCmd(t, env.app, "group", "get", "tids1-2")
	require.NoError(t, err)
	assert.Contains(t, out, "TIDS1-2")
	assert.Contains(t, out, term.GeneratedName)
}

func TestGroupCmd_DuplicateRendersKindAndCode(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)
	args := []string{"--as", env.coordinator.Email,
		"group", "create", "--career", "TIDS", "--term-number", "1", "--group-number", "1", "--term", term.ID}

	_, err := executeCmd(t, env.app, args...)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, args...)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicateGroup)
}

func TestGroupCmd_DeactivateReactivate(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)
	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"group", "create", "--career", "TIDS", "--term-number", "3", "--group-number", "1", "--term", term.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email, "group", "deactivate", "TIDS3-1")
	require.NoError(t, err)
	assert.Contains(t, out, "is now inactive")

	_, err = executeCmd(t, env.app, "--as", env.coordinator.Email, "group", "deactivate", "TIDS3-1")
	assert.ErrorIs(t, err, domain.ErrAlreadyInactive)

	out, err = executeCmd(t, env.app, "--as", env.coordinator.Email, "group", "reactivate", "TIDS3-1")
	require.NoError(t, err)
	assert.Contains(t, out, "is now active")

	out, err = executeCmd(t, env.app, "group", "list", "--active")
	require.NoError(t, err)
	assert.Contains(t, out, "TIDS3-1")
}

func TestGroupCmd_DeleteDeclinedKeepsGroup(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)
	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"group", "create", "--career", "TIDS", "--term-number", "1", "--group-number", "1", "--term", term.ID)
	require.NoError(t, err)

	var asked string
	env.app.IsInteractive = func() bool { return true }
	env.app.Confirm = func(title string) (bool, error) {
		asked = title
		return false, nil
	}

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email, "group", "delete", "TIDS1-1")
	require.NoError(t, err)
	assert.Contains(t, asked, "TIDS1-1")
	assert.Contains(t, out, "Cancelled.")

	groups, err := env.app.Groups.List(context.Background(), repository.GroupFilter{})
	require.NoError(t, err)
	assert.Len(t, groups, 1)
}

func TestGroupCmd_DeleteWithYesSkipsPrompt(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)
	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"group", "create", "--career", "TIDS", "--term-number", "1", "--group-number", "1", "--term", term.ID)
	require.NoError(t, err)

	env.app.IsInteractive = func() bool { return true }
	env.app.Confirm = func(string) (bool, error) {
		t.Fatal("confirm must not run with --yes")
		return false, nil
	}

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email, "group", "delete", "TIDS1-1", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted group TIDS1-1")

	groups, err := env.app.Groups.List(context.Background(), repository.GroupFilter{})
	require.NoError(t, err)
	assert.Empty(t, groups)
}

// --- load ---

func TestLoadCmd_AssignByEmailAndGroupName(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)
	prof := env.addUser(t, domain.RoleFullTimeProfessor, testutil.WithUserName("Ada Lovelace"))
	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"group", "create", "--career", "TIDS", "--term-number", "1", "--group-number", "1", "--term", term.ID)
	require.NoError(t, err)

	out, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"load", "assign", "--professor", prof.Email, "--career", "TIDS",
		"--subject", "base de datos", "--group", "TIDS1-1", "--tutor")
	require.NoError(t, err)
	assert.Contains(t, out, "Assigned Base de Datos")

	out, err = executeCmd(t, env.app, "load", "list", "--professor", prof.Email)
	require.NoError(t, err)
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "TIDS1-1")
	assert.Contains(t, out, "tutor")
}

func TestLoadCmd_TutorConflictSurfacesCode(t *testing.T) {
	env := testApp(t)
	term := env.activeTerm(t)
	p1 := env.addUser(t, domain.RoleFullTimeProfessor)
	p2 := env.addUser(t, domain.RoleAdjunctProfessor)
	_, err := executeCmd(t, env.app, "--as", env.coordinator.Email,
		"group", "create", "--career", "TIDS", "--term-number", "1", "--group-number", "1", "--term", term.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "--as", env.coordinator.Email,
		"load", "assign", "--professor", p1.Email, "--career", "TIDS", "--subject", "Base de Datos", "--group", "TIDS1-1", "--tutor")
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "--as", env.coordinator.Email,
		"load", "assign", "--professor", p2.Email, "--career", "TIDS", "--subject", "Desarrollo Web", "--group", "TIDS1-1", "--tutor")
	require.Error(t, err)
	assert.Equal(t, domain.CodeTutorConflictGroup, domain.CodeOf(err))
}

func TestLoadCmd_ProfessorCannotAssign(t *testing.T) {
	env := testApp(t)
	prof := env.addUser(t, domain.RoleFullTimeProfessor)

	_, err := executeCmd(t, env.app, "--as", prof.Email,
		"load", "assign", "--professor", prof.ID, "--career", "TIDS", "--subject", "Base de Datos", "--group", "g")
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

// --- progress ---

func TestProgressCmd_HeaderAndLineFlow(t *testing.T) {
	env := testApp(t)
	ctx := context.Background()
	coord := testutil.ActorFor(env.coordinator)
	term := env.activeTerm(t)
	prof := env.addUser(t, domain.RoleFullTimeProfessor)
	g, err := env.app.Groups.Create(ctx, coord, service.CreateGroupInput{Career: "TIDS", TermNumber: 1, GroupNumber: 1, TermID: term.ID})
	require.NoError(t, err)
	load, err := env.app.Loads.Assign(ctx, coord, service.AssignInput{ProfessorID: prof.ID, Career: "TIDS", Subject: "Base de Datos", GroupID: g.ID})
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "--as", env.coordinator.Email, "progress", "create", "--load", load.ID)
	require.NoError(t, err)

	headers, err := env.app.Progress.ListHeaders(ctx, coord, repository.HeaderFilter{})
	require.NoError(t, err)
	require.Len(t, headers, 1)
	headerID := headers[0].ID

	out, err := executeCmd(t, env.app, "--as", prof.Email,
		"progress", "line", "add", "--header", headerID[:8], "--topic", "normalizacion",
		"--week", "3", "--state", "delayed", "--late", "--justification", "holiday week")
	require.NoError(t, err)
	assert.Contains(t, out, "week 3")

	_, err = executeCmd(t, env.app, "--as", prof.Email, "progress", "status", headerID, "submitted")
	require.NoError(t, err)

	out, err = executeCmd(t, env.app, "--as", prof.Email, "progress", "get", headerID)
	require.NoError(t, err)
	assert.Contains(t, out, "Submitted")
	assert.Contains(t, out, "holiday week")
	assert.Contains(t, out, "Normalizacion")
	assert.Contains(t, out, "Base de Datos · TIDS1-1")

	student := env.addUser(t, domain.RoleStudent)
	_, err = executeCmd(t, env.app, "--as", student.Email, "progress", "get", headerID)
	require.Error(t, err)
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
}

func TestProgressCmd_LineUpdateKeepsUnsetFields(t *testing.T) {
	env := testApp(t)
	ctx := context.Background()
	coord := testutil.ActorFor(env.coordinator)
	term := env.activeTerm(t)
	prof := env.addUser(t, domain.RoleAdjunctProfessor)
	g, err := env.app.Groups.Create(ctx, coord, service.CreateGroupInput{Career: "TIDS", TermNumber: 2, GroupNumber: 1, TermID: term.ID})
	require.NoError(t, err)
	load, err := env.app.Loads.Assign(ctx, coord, service.AssignInput{ProfessorID: prof.ID, Career: "TIDS", Subject: "Desarrollo Web", GroupID: g.ID})
	require.NoError(t, err)
	h, err := env.app.Progress.CreateHeader(ctx, coord, service.CreateHeaderInput{AcademicLoadID: load.ID})
	require.NoError(t, err)
	line, err := env.app.Progress.CreateLine(ctx, testutil.ActorFor(prof), service.CreateLineInput{
		HeaderID: h.ID, Topic: "JavaScript", WeekCompleted: 2, AdvanceState: domain.AdvanceInProgress,
	})
	require.NoError(t, err)

	_, err = executeCmd(t, env.app, "--as", prof.Email, "progress", "line", "update", line.ID, "--state", "completed")
	require.NoError(t, err)

	lines, err := env.app.Progress.ListLines(ctx, coord, h.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, domain.AdvanceCompleted, lines[0].AdvanceState)
	assert.Equal(t, "JavaScript", lines[0].Topic)
	assert.Equal(t, 2, lines[0].WeekCompleted)
}

// --- user & catalog ---

func TestUserCmd_AddAndGetByEmail(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "user", "add",
		"--name", "Grace Hopper", "--email", "Grace@Aula.Test", "--role", "moderator", "--password", "s3cret-pass")
	require.NoError(t, err)
	assert.Contains(t, out, "grace@aula.test")

	out, err = executeCmd(t, env.app, "user", "get", "grace@aula.test")
	require.NoError(t, err)
	assert.Contains(t, out, "Grace Hopper")
	assert.Contains(t, out, "moderator")
}

func TestUserCmd_InvalidRole(t *testing.T) {
	env := testApp(t)

	_, err := executeCmd(t, env.app, "user", "add",
		"--name", "X", "--email", "x@aula.test", "--role", "dean", "--password", "s3cret-pass")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCatalogCmd_Browse(t *testing.T) {
	env := testApp(t)

	out, err := executeCmd(t, env.app, "catalog", "careers")
	require.NoError(t, err)
	assert.Contains(t, out, "TIDS")
	assert.Contains(t, out, "IDGS")

	out, err = executeCmd(t, env.app, "catalog", "topics", "tids", "base de datos")
	require.NoError(t, err)
	assert.Contains(t, out, "Normalizacion")

	_, err = executeCmd(t, env.app, "catalog", "subjects", "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnknownCareer)

	_, err = executeCmd(t, env.app, "catalog", "topics", "TIDS", "Alquimia")
	assert.ErrorIs(t, err, domain.ErrUnknownSubject)
}
