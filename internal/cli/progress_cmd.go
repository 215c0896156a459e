package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/repository"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Track course progress per academic load",
	}

	cmd.AddCommand(
		newProgressCreateCmd(app),
		newProgressGetCmd(app),
		newProgressListCmd(app),
		newProgressStatusCmd(app),
		newProgressDeleteCmd(app),
		newProgressLineCmd(app),
	)

	return cmd
}

func newProgressCreateCmd(app *App) *cobra.Command {
	var in service.CreateHeaderInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Start progress tracking for an academic load",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if in.AcademicLoadID, err = resolveLoadID(ctx, app, in.AcademicLoadID); err != nil {
				return err
			}
			if in.TermID, err = resolveTermID(ctx, app, in.TermID); err != nil {
				return err
			}
			h, err := app.Progress.CreateHeader(ctx, actor, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created progress %s (%s)\n", h.ID, h.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.AcademicLoadID, "load", "", "Academic load ID")
	cmd.Flags().StringVar(&in.TermID, "term", "", "Term ID (defaults to the load's term)")

	return cmd
}

func newProgressGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show a progress header and its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveHeaderID(ctx, app, actor, args[0])
			if err != nil {
				return err
			}
			h, err := app.Progress.GetHeader(ctx, actor, id)
			if err != nil {
				return err
			}
			lines, err := app.Progress.ListLines(ctx, actor, h.ID)
			if err != nil {
				return err
			}
			names, err := loadLabels(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHeader(h, names[h.AcademicLoadID], lines))
			return nil
		},
	}
}

func newProgressListCmd(app *App) *cobra.Command {
	var f repository.HeaderFilter
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List progress headers visible to the acting user",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if f.TermID, err = resolveTermID(ctx, app, f.TermID); err != nil {
				return err
			}
			if f.ProfessorID, err = resolveUserID(ctx, app, f.ProfessorID); err != nil {
				return err
			}
			f.Status = domain.ProgressStatus(status)
			headers, err := app.Progress.ListHeaders(ctx, actor, f)
			if err != nil {
				return err
			}
			if len(headers) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No progress headers found.")
				return nil
			}
			names, err := loadLabels(ctx, app)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatHeaderList(headers, names))
			return nil
		},
	}

	cmd.Flags().StringVar(&f.TermID, "term", "", "Only headers in this term")
	cmd.Flags().StringVar(&f.ProfessorID, "professor", "", "Only this professor's headers")
	cmd.Flags().StringVar(&status, "status", "", "Only headers in this status")

	return cmd
}

func newProgressStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status ID STATUS",
		Short: "Move a header to draft|submitted|reviewed|approved|rejected",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveHeaderID(ctx, app, actor, args[0])
			if err != nil {
				return err
			}
			h, err := app.Progress.SetStatus(ctx, actor, id, domain.ProgressStatus(args[1]))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Progress %s is now %s\n", h.ID, formatter.ProgressStatusPill(h.Status))
			return nil
		},
	}
}

func newProgressDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a progress header and all of its lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveHeaderID(ctx, app, actor, args[0])
			if err != nil {
				return err
			}
			ok, err := app.confirmDestructive(cmd, yes, "Delete progress "+id+" and its lines?")
			if err != nil || !ok {
				return err
			}
			if err := app.Progress.DeleteHeader(ctx, actor, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted progress %s\n", id)
			return nil
		},
	}

	yesFlag(cmd, &yes)

	return cmd
}

func newProgressLineCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "line",
		Short: "Manage progress line items",
	}

	cmd.AddCommand(
		newLineAddCmd(app),
		newLineUpdateCmd(app),
		newLineDeleteCmd(app),
		newLineListCmd(app),
	)

	return cmd
}

// lineFlags holds the flags shared by line add and line update.
type lineFlags struct {
	topic, state                        string
	week                                int
	late                                bool
	justification, corrective, evidence string
}

func (lf *lineFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&lf.topic, "topic", "", "Catalog topic")
	cmd.Flags().IntVar(&lf.week, "week", 0, "Week the topic was completed (>= 1)")
	cmd.Flags().StringVar(&lf.state, "state", "", "not_started|in_progress|completed|delayed")
	cmd.Flags().BoolVar(&lf.late, "late", false, "Mark the line as late")
	cmd.Flags().StringVar(&lf.justification, "justification", "", "Why the topic is late")
	cmd.Flags().StringVar(&lf.corrective, "corrective", "", "Corrective actions")
	cmd.Flags().StringVar(&lf.evidence, "evidence", "", "Evidence reference")
}

func newLineAddCmd(app *App) *cobra.Command {
	var header string
	var lf lineFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a topic's advance",
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			headerID, err := resolveHeaderID(ctx, app, actor, header)
			if err != nil {
				return err
			}
			l, err := app.Progress.CreateLine(ctx, actor, service.CreateLineInput{
				HeaderID:          headerID,
				Topic:             lf.topic,
				WeekCompleted:     lf.week,
				AdvanceState:      domain.AdvanceState(lf.state),
				IsLate:            lf.late,
				Justification:     optString(cmd, "justification", lf.justification),
				CorrectiveActions: optString(cmd, "corrective", lf.corrective),
				Evidence:          optString(cmd, "evidence", lf.evidence),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added line %s (%s, week %d)\n", l.ID, l.Topic, l.WeekCompleted)
			return nil
		},
	}

	cmd.Flags().StringVar(&header, "header", "", "Progress header ID")
	lf.register(cmd)

	return cmd
}

func newLineUpdateCmd(app *App) *cobra.Command {
	var lf lineFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a progress line; unset flags keep their value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			state := domain.AdvanceState(lf.state)
			l, err := app.Progress.UpdateLine(cmd.Context(), actor, args[0], service.UpdateLineInput{
				Topic:             changed(cmd, "topic", &lf.topic),
				WeekCompleted:     changed(cmd, "week", &lf.week),
				AdvanceState:      changed(cmd, "state", &state),
				IsLate:            changed(cmd, "late", &lf.late),
				Justification:     changed(cmd, "justification", &lf.justification),
				CorrectiveActions: changed(cmd, "corrective", &lf.corrective),
				Evidence:          changed(cmd, "evidence", &lf.evidence),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated line %s\n", l.ID)
			return nil
		},
	}

	lf.register(cmd)

	return cmd
}

func newLineDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a progress line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ok, err := app.confirmDestructive(cmd, yes, "Delete line "+args[0]+"?")
			if err != nil || !ok {
				return err
			}
			if err := app.Progress.DeleteLine(cmd.Context(), actor, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted line %s\n", args[0])
			return nil
		},
	}

	yesFlag(cmd, &yes)

	return cmd
}

func newLineListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list HEADER",
		Short: "List a header's lines",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := app.actor(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			id, err := resolveHeaderID(ctx, app, actor, args[0])
			if err != nil {
				return err
			}
			lines, err := app.Progress.ListLines(ctx, actor, id)
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No lines recorded.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatLines(lines))
			return nil
		},
	}
}

// loadLabels maps academic load ids to "subject · group" labels.
func loadLabels(ctx context.Context, app *App) (map[string]string, error) {
	loads, err := app.Loads.List(ctx, repository.LoadFilter{})
	if err != nil {
		return nil, err
	}
	groups, err := app.Groups.List(ctx, repository.GroupFilter{})
	if err != nil {
		return nil, err
	}
	groupNames := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNames[g.ID] = g.GeneratedName
	}
	labels := make(map[string]string, len(loads))
	for _, l := range loads {
		labels[l.ID] = l.Subject + " · " + groupNames[l.GroupID]
	}
	return labels, nil
}
