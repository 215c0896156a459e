package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/spf13/cobra"
)

func newTermCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "term",
		Short: "Manage academic terms",
	}

	cmd.AddCommand(
		newTermCreateCmd(app),
		newTermUpdateCmd(app),
		newTermListCmd(app),
		newTermGetCmd(app),
		newTermCurrentCmd(app),
		newTermDeleteCmd(app),
		newTermICalCmd(app),
	)

	return cmd
}

func newTermCreateCmd(app *App) *cobra.Command {
	var start, end time.Time

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a term",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			t, err := app.Terms.Create(cmd.Context(), actor, service.CreateTermInput{StartDate: start, EndDate: end})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created term %s (%s)\n", t.GeneratedName, t.ID)
			return nil
		},
	}

	dateFlag(cmd.Flags(), &start, "start", "Start date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), &end, "end", "End date (YYYY-MM-DD)")

	return cmd
}

func newTermUpdateCmd(app *App) *cobra.Command {
	var start, end time.Time
	var active bool

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a term's dates or active flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveTermID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Terms.Update(ctx, actor, id, service.UpdateTermInput{
				StartDate: changed(cmd, "start", &start),
				EndDate:   changed(cmd, "end", &end),
				Active:    changed(cmd, "active", &active),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated term %s\n", t.GeneratedName)
			return nil
		},
	}

	dateFlag(cmd.Flags(), &start, "start", "New start date (YYYY-MM-DD)")
	dateFlag(cmd.Flags(), &end, "end", "New end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&active, "active", true, "Set the active flag")

	return cmd
}

func newTermListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List terms",
		RunE: func(cmd *cobra.Command, args []string) error {
			terms, err := app.Terms.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(terms) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No terms found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTermList(terms, app.now()))
			return nil
		},
	}
}

func newTermGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveTermID(ctx, app, args[0])
			if err != nil {
				return err
			}
			t, err := app.Terms.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTerm(t, app.now()))
			return nil
		},
	}
}

func newTermCurrentCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the term in progress today",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.now()
			t, err := app.Terms.Current(cmd.Context(), now)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTerm(t, now))
			return nil
		},
	}
}

func newTermDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a term",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveTermID(ctx, app, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirmDestructive(cmd, yes, "Delete term "+id+"?")
			if err != nil || !ok {
				return err
			}
			if err := app.Terms.Delete(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted term %s\n", id)
			return nil
		},
	}

	yesFlag(cmd, &yes)

	return cmd
}

func newTermICalCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "ical",
		Short: "Export all terms as an iCalendar feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := app.Terms.ExportICal(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" {
				fmt.Fprint(cmd.OutOrStdout(), feed)
				return nil
			}
			if err := os.WriteFile(output, []byte(feed), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to file instead of stdout")

	return cmd
}
