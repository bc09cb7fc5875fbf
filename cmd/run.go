package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqdeck/internal/app"
	"github.com/abhisek/pyqdeck/internal/bookmarks"
	"github.com/abhisek/pyqdeck/internal/explain"
	"github.com/abhisek/pyqdeck/internal/journey"
	"github.com/abhisek/pyqdeck/internal/kvstore"
	"github.com/abhisek/pyqdeck/internal/llm"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/screens/browse"
	"github.com/abhisek/pyqdeck/internal/streak"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
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

	// The TUI owns the terminal, so logs go to a file next to the DB.
	closeLog := redirectLogs(dbPath)
	defer closeLog()

	cat, err := resolveCatalog(cmd)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	tracker := streak.NewTracker(kv)
	if _, err := tracker.CheckAndReset(ctx, time.Now()); err != nil {
		slog.Warn("streak day-boundary check failed", "error", err)
	}

	deps := browse.Deps{
		Catalog:    cat,
		Completion: progress.NewCompletionStore(kv),
		Bookmarks:  bookmarks.NewStore(kv),
		Streak:     tracker,
		Journey:    journey.NewStore(kv),
	}

	provider, err := llm.NewProviderFromEnv(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "AI explanations will be unavailable.")
	} else {
		cache := kvstore.NewChunked(kv, kvstore.DefaultChunkSize)
		deps.Explain = explain.NewService(provider, cache, explain.DefaultConfig())
	}

	return app.Run(deps)
}

// redirectLogs points slog at pyqdeck.log beside the database. Returns
// a cleanup func that restores nothing but closes the file.
func redirectLogs(dbPath string) func() {
	logPath := filepath.Join(filepath.Dir(dbPath), "pyqdeck.log")
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		// Keep the default stderr handler; the TUI will overdraw it.
		return func() {}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, nil)))
	return func() { f.Close() }
}
