package exercises

import (
	"fmt"
	"strconv"

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
	exercisesCmd := &cobra.Command{
		Use:   "exercises",
		Short: "Log and list exercises",
	}

	exercisesCmd.AddCommand(addExerciseCmd(), listExercisesCmd())
	root.GetRoot().AddCommand(exercisesCmd)
}

// ==========================
// Add Exercise
// ==========================
func addExerciseCmd() *cobra.Command {
	var (
		userID      int64
		description string
		duration    float64
		date        string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log an exercise for a user",
		Long:  "Log an exercise for a user. --date is YYYY-MM-DD; today is used when omitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"description": description,
				"duration":    duration,
			}
			if date != "" {
				payload["date"] = date
			}

			var ex models.Exercise
			path := "/api/users/" + strconv.FormatInt(userID, 10) + "/exercises"
			if err := client.New().Post(path, payload, &ex); err != nil {
				return errors.Errorf("add exercise: %w", err)
			}
			fmt.Printf("Logged exercise %d for user %d on %s\n", ex.ExerciseID, ex.UserID, ex.Date)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "id of the user")
	cmd.Flags().StringVar(&description, "description", "", "what was done")
	cmd.Flags().Float64Var(&duration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&date, "date", "", "date of the exercise (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("user-id")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("duration")
	return cmd
}

// ==========================
// List Exercises
// ==========================
func listExercisesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every logged exercise",
		RunE: func(cmd *cobra.Command, args []string) error {
			var list []models.Exercise
			if err := client.New().Get("/api/exercises", nil, &list); err != nil {
				return errors.Errorf("list exercises: %w", err)
			}

			if asJSON {
				return output.PrintJSON(list)
			}

			rows := make([][]interface{}, 0, len(list))
			for _, e := range list {
				rows = append(rows, []interface{}{e.ExerciseID, e.UserID, e.Date, e.Duration, e.Description})
			}
			output.RenderTable([]string{"ID", "User", "Date", "Duration", "Description"}, rows)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
