package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/spf13/cobra"
)

func newLoadCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "load",
		Aliases: []string{"loads"},
		Short:   "Manage academic loads (professor × subject × group)",
	}

	cmd.AddCommand(
		newLoadAssignCmd(app),
		newLoadUpdateCmd(app),
		newLoadListCmd(app),
		newLoadGetCmd(app),
		newLoadActiveCmd(app, "deactivate", "Soft-delete an academic load", false),
		newLoadActiveCmd(app, "reactivate", "Restore a deactivated academic load", true),
		newLoadRemoveCmd(app),
	)

	return cmd
}

func newLoadAssignCmd(app *App) *cobra.Command {
	var in service.AssignInput

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign a professor to teach a subject to a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if in.ProfessorID, err = resolveUserID(ctx, app, in.ProfessorID); err != nil {
				return err
			}
			if in.GroupID, err = resolveGroupID(ctx, app, in.GroupID); err != nil {
				return err
			}
			l, err := app.Loads.Assign(ctx, actor, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %s (%s)\n", l.Subject, l.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.ProfessorID, "professor", "", "Professor id or email")
	cmd.Flags().StringVar(&in.Career, "career", "", "Career code or name")
	cmd.Flags().StringVar(&in.Subject, "subject", "", "Subject name")
	cmd.Flags().StringVar(&in.GroupID, "group", "", "Group id or name")
	cmd.Flags().BoolVar(&in.IsTutor, "tutor", false, "Professor is the group's tutor")

	return cmd
}

func newLoadUpdateCmd(app *App) *cobra.Command {
	var professor, career, subject, group string
	var tutor bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update an academic load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveLoadID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if professor, err = resolveUserID(ctx, app, professor); err != nil {
				return err
			}
			if group, err = resolveGroupID(ctx, app, group); err != nil {
				return err
			}
			l, err := app.Loads.Update(ctx, actor, id, service.UpdateLoadInput{
				ProfessorID: changed(cmd, "professor", &professor),
				Career:      changed(cmd, "career", &career),
				Subject:     changed(cmd, "subject", &subject),
				GroupID:     changed(cmd, "group", &group),
				IsTutor:     changed(cmd, "tutor", &tutor),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated academic load %s\n", l.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&professor, "professor", "", "Professor id or email")
	cmd.Flags().StringVar(&career, "career", "", "Career code or name")
	cmd.Flags().StringVar(&subject, "subject", "", "Subject name")
	cmd.Flags().StringVar(&group, "group", "", "Group id or name")
	cmd.Flags().BoolVar(&tutor, "tutor", false, "Professor is the group's tutor")

	return cmd
}

func newLoadListCmd(app *App) *cobra.Command {
	var f repository.LoadFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List academic loads",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if f.ProfessorID, err = resolveUserID(ctx, app, f.ProfessorID); err != nil {
				return err
			}
			if f.GroupID, err = resolveGroupID(ctx, app, f.GroupID); err != nil {
				return err
			}
			if f.TermID, err = resolveTermID(ctx, app, f.TermID); err != nil {
				return err
			}
			loads, err := app.Loads.List(ctx, f)
			if err != nil {
				return err
			}
			if len(loads) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No academic loads found.")
				return nil
			}
			names, err := loadNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLoadList(loads, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.ProfessorID, "professor", "", "Only this professor's loads")
	cmd.Flags().StringVar(&f.GroupID, "group", "", "Only this group's loads")
	cmd.Flags().StringVar(&f.TermID, "term", "", "Only loads in this term")
	cmd.Flags().BoolVar(&f.ActiveOnly, "active", false, "Hide deactivated loads")

	return cmd
}

func newLoadGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show an academic load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveLoadID(ctx, app, args[0])
			if err != nil {
				return err
			}
			l, err := app.Loads.Get(ctx, id)
			if err != nil {
				return err
			}
			names, err := loadNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLoad(l, names))
			return nil
		},
	}
}

func newLoadActiveCmd(app *App, use, short string, activate bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveLoadID(ctx, app, args[0])
			if err != nil {
				return err
			}
			toggle := app.Loads.Deactivate
			if activate {
				toggle = app.Loads.Reactivate
			}
			l, err := toggle(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Academic load %s is now %s\n", l.ID, activeWord(l.Active))
			return nil
		},
	}
}

func newLoadRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove ID",
		Short: "Permanently remove an academic load",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveLoadID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirmDestructive(cmd, yes, "Remove academic load "+id+"?")
			if err != nil || !ok {
				return err
			}
			if err := app.Loads.Remove(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed academic load %s\n", id)
			return nil
		},
	}

	yesFlag(cmd, &yes)

	return cmd
}

func loadNames(ctx context.Context, app *App) (formatter.LoadNames, error) {
	terms, err := termNames(ctx, app)
	if err != nil {
		return formatter.LoadNames{}, err
	}
	users, err := app.Users.List(ctx)
	if err != nil {
		return formatter.LoadNames{}, err
	}
	groups, err := app.Groups.List(ctx, repository.GroupFilter{})
	if err != nil {
		return formatter.LoadNames{}, err
	}

	names := formatter.LoadNames{
		Professors: make(map[string]string, len(users)),
		Groups:     make(map[string]string, len(groups)),
		Terms:      terms,
	}
	for _, u := range users {
		names.Professors[u.ID] = u.Name
	}
	for _, g := range groups {
		names.Groups[g.ID] = g.GeneratedName
	}
	return names, nil
}
