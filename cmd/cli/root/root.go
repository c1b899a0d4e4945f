package root

import (
	"github.com/spf13/cobra"
)

// RootCmd is the exlog entry point. Subcommand packages register themselves in init.
var RootCmd = &cobra.Command{
	Use:           "exlog",
	Short:         "Exercise tracker CLI",
	Long:          "Command line interface for creating users, logging exercises and reading exercise logs from the tracker API.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// GetRoot returns the RootCmd.
func GetRoot() *cobra.Command {
	return RootCmd
}
