package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/aula/internal/cli/formatter"
	"github.com/alexanderramin/aula/internal/domain"
	"github.com/alexanderramin/aula/internal/service"
	"github.com/spf13/cobra"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage the user directory",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
		newUserGetCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var in service.CreateUserInput
	var role string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			in.Role = domain.Role(role)
			u, err := app.Users.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created user %s <%s> (%s)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}

	roles := make([]string, 0, len(domain.ValidRoles))
	for r := range domain.ValidRoles {
		roles = append(roles, string(r))
	}
	sort.Strings(roles)

	cmd.Flags().StringVar(&in.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&in.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&role, "role", "", "One of: "+strings.Join(roles, ", "))
	cmd.Flags().StringVar(&in.Password, "password", "", "Initial password (min 8 characters)")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUserList(users))
			return nil
		},
	}
}

func newUserGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID|EMAIL",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveUserID(ctx, app, args[0])
			if err != nil {
				return err
			}
			u, err := app.Users.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u))
			return nil
		},
	}
}
