package cli

import (
	"fmt"

	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/spf13/cobra"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse careers, subjects and topics",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "careers",
			Short: "List careers",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCareers(app.Catalog.Careers()))
				return nil
			},
		},
		&cobra.Command{
			Use:   "subjects CAREER",
			Short: "List a career's subjects",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				c, ok := app.Catalog.Career(args[0])
				if !ok {
					return domain.ErrUnknownCareer.With("career %q not in catalog", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSubjects(c))
				return nil
			},
		},
		&cobra.Command{
			Use:   "topics CAREER SUBJECT",
			Short: "List a subject's topics",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if _, ok := app.Catalog.Career(args[0]); !ok {
					return domain.ErrUnknownCareer.With("career %q not in catalog", args[0])
				}
				s, ok := app.Catalog.Subject(args[0], args[1])
				if !ok {
					return domain.ErrUnknownSubject.With("subject %q not in catalog for %s", args[1], args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTopics(s))
				return nil
			},
		},
	)

	return cmd
}
