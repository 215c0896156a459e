package cli

import (
	"time"

	"github.com/alexanderramin/aula/internal/catalog"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Terms    service.TermService
	Groups   service.GroupService
	Loads    service.AcademicLoadService
	Progress service.ProgressService
	Users    service.UserService
	Catalog  catalog.Lookup

	// Now defaults to time.Now; tests pin it.
	Now func() time.Time
	// IsInteractive reports whether prompts may be shown. Nil means never.
	IsInteractive func() bool
	// Confirm asks a yes/no question. Nil uses a huh confirm form.
	Confirm func(title string) (bool, error)

	as string
}

// NewRootCmd creates the top-level "aula" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "aula",
		Short:         "Academic scheduling and course-progress workflow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&app.as, "as", "", "Acting user (id or email)")

	root.AddCommand(
		newTermCmd(app),
		newGroupCmd(app),
		newLoadCmd(app),
		newProgressCmd(app),
		newUserCmd(app),
		newCatalogCmd(app),
	)

	return root
}

// actor resolves the --as user. Commands that mutate or read protected
// records call it before touching a service.
func (app *App) actor(cmd *cobra.Command) (domain.Actor, error) {
	return app.Users.ResolveActor(cmd.Context(), app.as)
}

func (app *App) now() time.Time {
	if app.Now != nil {
		return app.Now()
	}
	return time.Now()
}
