package logs

import (
	"net/url"
	"strconv"

	"github.com/crucial707/exercise-tracker/cmd/cli/client"
	"github.com/crucial707/exercise-tracker/cmd/cli/output"
	"github.com/crucial707/exercise-tracker/cmd/cli/root"
	"github.com/crucial707/exercise-tracker/internal/models"
	"github.com/go-errors/errors"
	"github.com/spf13/cobra"
)

func init() {
	root.GetRoot().AddCommand(logsCmd())
}

// logsCmd reads one user's log, or every user's when --user-id is not given.
func logsCmd() *cobra.Command {
	var (
		userID int64
		from   string
		to     string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show an exercise log",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			if from != "" {
				q.Set("from", from)
			}
			if to != "" {
				q.Set("to", to)
			}
			if cmd.Flags().Changed("limit") {
				q.Set("limit", strconv.Itoa(limit))
			}

			path := "/api/logs"
			if cmd.Flags().Changed("user-id") {
				path = "/api/users/" + strconv.FormatInt(userID, 10) + "/logs"
			}

			var res models.LogResult
			if err := client.New().Get(path, q, &res); err != nil {
				return errors.Errorf("logs: %w", err)
			}

			if asJSON {
				return output.PrintJSON(res)
			}

			rows := make([][]interface{}, 0, len(res.Logs))
			for _, l := range res.Logs {
				rows = append(rows, []interface{}{l.Date, l.UserID, l.ExerciseID, l.Duration, l.Description})
			}
			output.RenderLog([]string{"Date", "User", "Exercise", "Duration", "Description"}, rows, res.Count)
			return nil
		},
	}

	cmd.Flags().Int64Var(&userID, "user-id", 0, "only this user's exercises")
	cmd.Flags().StringVar(&from, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "maximum number of entries")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
	return cmd
}
