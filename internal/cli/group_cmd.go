package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/spf13/cobra"
)

func newGroupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage class groups",
	}

	cmd.AddCommand(
		newGroupCreateCmd(app),
		newGroupUpdateCmd(app),
		newGroupListCmd(app),
		newGroupGetCmd(app),
		newGroupActiveCmd(app, "deactivate", "Soft-delete a group", false),
		newGroupActiveCmd(app, "reactivate", "Restore a deactivated group", true),
		newGroupDeleteCmd(app),
	)

	return cmd
}

func newGroupCreateCmd(app *App) *cobra.Command {
	var in service.CreateGroupInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if in.TermID, err = resolveTermID(ctx, app, in.TermID); err != nil {
				return err
			}
			g, err := app.Groups.Create(ctx, actor, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %s (%s)\n", g.GeneratedName, g.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Career, "career", "", "Career code or name")
	cmd.Flags().IntVar(&in.TermNumber, "term-number", 0, "Term number within the career (1-15)")
	cmd.Flags().IntVar(&in.GroupNumber, "group-number", 0, "Group number")
	cmd.Flags().StringVar(&in.TermID, "term", "", "Academic term ID")

	return cmd
}

func newGroupUpdateCmd(app *App) *cobra.Command {
	var career, termID string
	var termNumber, groupNumber int

	cmd := &cobra.Command{
		Use:   "update GROUP",
		Short: "Update a group; changing --term moves its academic loads",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveGroupID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if termID, err = resolveTermID(ctx, app, termID); err != nil {
				return err
			}
			g, err := app.Groups.Update(ctx, actor, id, service.UpdateGroupInput{
				Career:      changed(cmd, "career", &career),
				TermNumber:  changed(cmd, "term-number", &termNumber),
				GroupNumber: changed(cmd, "group-number", &groupNumber),
				TermID:      changed(cmd, "term", &termID),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated group %s\n", g.GeneratedName)
			return nil
		},
	}

	cmd.Flags().StringVar(&career, "career", "", "Career code or name")
	cmd.Flags().IntVar(&termNumber, "term-number", 0, "Term number within the career (1-15)")
	cmd.Flags().IntVar(&groupNumber, "group-number", 0, "Group number")
	cmd.Flags().StringVar(&termID, "term", "", "Academic term ID")

	return cmd
}

func newGroupListCmd(app *App) *cobra.Command {
	var f repository.GroupFilter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List groups",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			var err error
			if f.TermID, err = resolveTermID(ctx, app, f.TermID); err != nil {
				return err
			}
			groups, err := app.Groups.List(ctx, f)
			if err != nil {
				return err
			}
			if len(groups) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No groups found.")
				return nil
			}
			names, err := termNames(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGroupList(groups, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.TermID, "term", "", "Only groups in this term")
	cmd.Flags().StringVar(&f.Career, "career", "", "Only groups of this career")
	cmd.Flags().BoolVar(&f.ActiveOnly, "active", false, "Hide deactivated groups")

	return cmd
}

func newGroupGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get GROUP",
		Short: "Show a group by id or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveGroupID(ctx, app, args[0])
			if err != nil {
				return err
			}
			g, err := app.Groups.Get(ctx, id)
			if err != nil {
				return err
			}
			var termName string
			if t, err := app.Terms.Get(ctx, g.TermID); err == nil {
				termName = t.GeneratedName
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatGroup(g, termName))
			return nil
		},
	}
}

func newGroupActiveCmd(app *App, use, short string, activate bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " GROUP",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveGroupID(ctx, app, args[0])
			if err != nil {
				return err
			}
			toggle := app.Groups.Deactivate
			if activate {
				toggle = app.Groups.Reactivate
			}
			g, err := toggle(ctx, actor, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Group %s is now %s\n", g.GeneratedName, activeWord(g.Active))
			return nil
		},
	}
}

func newGroupDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete GROUP",
		Short: "Delete a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveGroupID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirmDestructive(cmd, yes, "Delete group "+args[0]+"?")
			if err != nil || !ok {
				return err
			}
			if err := app.Groups.Delete(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", args[0])
			return nil
		},
	}

	yesFlag(cmd, &yes)

	return cmd
}

func termNames(ctx context.Context, app *App) (map[string]string, error) {
	terms, err := app.Terms.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(terms))
	for _, t := range terms {
		names[t.ID] = t.GeneratedName
	}
	return names, nil
}

func activeWord(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}
