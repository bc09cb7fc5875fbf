package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqdeck/internal/kvstore"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/streak"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show study statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		kv, err := kvstore.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer kv.Close()

		cat, err := resolveCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}

		rec := streak.NewTracker(kv).Load(ctx)
		fmt.Printf("Streak:       %d day(s) (best %d)\n", rec.Streak, rec.BestStreak)
		fmt.Printf("Solved today: %d\n", rec.TodayCount)
		fmt.Println()

		store := progress.NewCompletionStore(kv)
		overall := progress.ForNode(ctx, store, cat.AllQuestionIDs())
		if !overall.HasData {
			fmt.Println("Progress unavailable (store unreadable).")
			return nil
		}
		fmt.Printf("Overall:      %d/%d (%d%%)\n", overall.Completed, overall.Total, overall.Percent)
		fmt.Println()

		for _, b := range cat.Branches() {
			s := progress.ForNode(ctx, store, b.QuestionIDs())
			fmt.Printf("  %-40s %4d/%-4d %3d%%\n", b.Name, s.Completed, s.Total, s.Percent)
		}
		return nil
	},
}
