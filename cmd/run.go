package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/app"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	d, err := openDeps(cmd, depsOptions{logToFile: true, withAI: true})
	if err != nil {
		return err
	}
	defer d.Close()

	start, _ := cmd.Flags().GetString("open")
	return app.Run(cmd.Context(), app.Options{Coach: d.coach, StartPath: start})
}
