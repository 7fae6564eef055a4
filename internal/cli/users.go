package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"cluetrack/internal/errors"
	"cluetrack/internal/models"
	"cluetrack/internal/repositories"
)

func newUsersCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}

	cmd.AddCommand(newUsersListCmd(app))
	cmd.AddCommand(newUsersCreateCmd(app))
	cmd.AddCommand(newUsersResetPasswordCmd(app))
	cmd.AddCommand(newUsersDeactivateCmd(app))

	return cmd
}

func newUsersListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			users, closeDB, err := openUsers(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeDB()
			}()

			list, err := users.List(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "USERNAME\tNAME\tROLE\tSTATUS\tPERMISSIONS")
			for _, user := range list {
				permissions := make([]string, 0, len(user.Permissions))
				for _, permission := range user.Permissions {
					permissions = append(permissions, string(permission))
				}
				_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
					user.Username, user.Name, user.Role, user.Status, strings.Join(permissions, ","))
			}
			return w.Flush()
		},
	}
}

func newUsersCreateCmd(app *App) *cobra.Command {
	var (
		name        string
		password    string
		permissions []string
	)

	cmd := &cobra.Command{
		Use:   "create <username>",
		Short: "Create an operator account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := repositories.CreateUserInput{
				Username: args[0],
				Name:     name,
				Password: password,
				Role:     models.RoleOperator,
			}
			for _, raw := range permissions {
				permission := models.Permission(raw)
				if !validPermission(permission) {
					return fmt.Errorf("unknown permission %q", raw)
				}
				input.Permissions = append(input.Permissions, permission)
			}

			users, closeDB, err := openUsers(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeDB()
			}()

			user, err := users.Create(cmd.Context(), input)
			if err != nil {
				if errors.Is(err, repositories.ErrDuplicateUsername) {
					return fmt.Errorf("username %q is already taken", args[0])
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "initial password")
	cmd.Flags().StringSliceVar(&permissions, "permission", nil,
		"permission to grant, may be repeated (add_clue, edit_clue, view_archive)")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersResetPasswordCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "reset-password <username>",
		Short: "Set a new password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, closeDB, err := openUsers(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeDB()
			}()

			user, err := users.GetByUsername(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, repositories.ErrNoRecord) {
					return fmt.Errorf("no user named %q", args[0])
				}
				return err
			}
			if err = users.ResetPassword(cmd.Context(), user.ID, password); err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "password reset for %s\n", user.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newUsersDeactivateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <username>",
		Short: "Deactivate an account without deleting its history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			users, closeDB, err := openUsers(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer func() {
				_ = closeDB()
			}()

			user, err := users.GetByUsername(cmd.Context(), args[0])
			if err != nil {
				if errors.Is(err, repositories.ErrNoRecord) {
					return fmt.Errorf("no user named %q", args[0])
				}
				return err
			}
			if err = users.Deactivate(cmd.Context(), user.ID); err != nil {
				if errors.Is(err, repositories.ErrProtectedUser) {
					return fmt.Errorf("the built-in admin account cannot be deactivated")
				}
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deactivated %s\n", user.Username)
			return nil
		},
	}
}

func validPermission(permission models.Permission) bool {
	for _, known := range models.AllPermissions {
		if permission == known {
			return true
		}
	}
	return false
}
