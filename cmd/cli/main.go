package main

import (
	"fmt"
	"os"

	_ "github.com/crucial707/exercise-tracker/cmd/cli/exercises"
	_ "github.com/crucial707/exercise-tracker/cmd/cli/logs"
	"github.com/crucial707/exercise-tracker/cmd/cli/root"
	_ "github.com/crucial707/exercise-tracker/cmd/cli/users"
)

func main() {
	// Execute the root Cobra command
	if err := root.GetRoot().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
