package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/kvstore"
)

var rootCmd = &cobra.Command{
	Use:   "pyqdeck",
	Short: "Previous-year question decks for university exams",
	Long:  "Pyqdeck — terminal app for working through previous-year exam questions, with progress tracking, bookmarks, a daily streak, and AI explanations.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides PYQDECK_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a catalog JSON file (defaults to the embedded catalog)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(explainCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then PYQDECK_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, kvstore.EnsureDir(p)
	}
	return kvstore.DefaultDBPath()
}

// resolveCatalog loads the catalog from --catalog when given, otherwise
// the embedded one.
func resolveCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		return catalog.LoadFile(p)
	}
	return catalog.Default()
}
