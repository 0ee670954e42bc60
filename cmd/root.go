package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/codegenome/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "codegenome",
	Short: "AI-guided coding courses in your terminal",
	Long: "CodeGenome profiles how you learn, plans a journey through coding courses " +
		"and tracks lessons and assessments. Run without a subcommand to open the terminal UI.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CODEGENOME_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default: ./codegenome.yaml)")
	rootCmd.Flags().String("open", "/", "Path to open at start-up, e.g. /courses or /dashboard")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(coursesCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
