package users

import (
	"fmt"

	"github.com/crucial707/exercise-tracker/cmd/cli/client"
	"github.com/crucial707/exercise-tracker/cmd/cli/output"
	"github.com/crucial707/exercise-tracker/cmd/cli/root"
	"github.com/crucial707/exercise-tracker/internal/models"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

// ==========================
// CLI Command Init
// ==========================
func init() {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Create and list users",
	}

	usersCmd.AddCommand(createUserCmd(), listUsersCmd())
	root.GetRoot().AddCommand(usersCmd)
}

// ==========================
// Create User
// ==========================
func createUserCmd() *cobra.Command {
	var username string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			var user models.User
			if err := client.New().Post("/api/users", map[string]string{"username": username}, &user); err != nil {
				return errors.Errorf("create user: %w", err)
			}
			fmt.Printf("Created user %q with id %d\n", user.Username, user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "username for the new user")
	_ = cmd.MarkFlagRequired("username")
	return cmd
}

// ==========================
// List Users
// ==========================
func listUsersCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			var users []models.User
			if err := client.New().Get("/api/users", nil, &users); err != nil {
				return errors.Errorf("list users: %w", err)
			}

			if asJSON {
				return output.PrintJSON(users)
			}

			rows := make([][]interface{}, 0, len(users))
			for _, u := range users {
				rows = append(rows, []interface{}{u.ID, u.Username})
			}
			output.RenderTable([]string{"ID", "Username"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
