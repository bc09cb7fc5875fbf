package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqdeck/internal/kvstore"
)

var (
	resetYes  bool
	resetWhat string
)

// Key namespaces wiped per scope. "all" clears every namespace,
// including cached explanations.
var resetScopes = map[string][]string{
	"progress":     {"completed:"},
	"bookmarks":    {"bookmarks"},
	"streak":       {"streak"},
	"journey":      {"journey", "onboarding_seen"},
	"explanations": {"explanation_"},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset study data",
	Long:  "Reset study data. --what selects a scope: progress, bookmarks, streak, journey, explanations, or all.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		prefixes, ok := resetScopes[resetWhat]
		if resetWhat == "all" {
			ok = true
			prefixes = nil
			for _, p := range resetScopes {
				prefixes = append(prefixes, p...)
			}
		}
		if !ok {
			return fmt.Errorf("unknown scope %q", resetWhat)
		}

		if !resetYes {
			fmt.Printf("This permanently deletes your %s data. Re-run with --yes to confirm.\n", resetWhat)
			return nil
		}

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		kv, err := kvstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer kv.Close()

		var total int64
		for _, prefix := range prefixes {
			n, err := kv.DeletePrefix(ctx, prefix)
			if err != nil {
				return fmt.Errorf("delete %q keys: %w", prefix, err)
			}
			total += n
		}
		fmt.Printf("Deleted %d record(s).\n", total)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetYes, "yes", false, "Skip the confirmation prompt")
	resetCmd.Flags().StringVar(&resetWhat, "what", "all", "Scope to reset: progress, bookmarks, streak, journey, explanations, all")
}
