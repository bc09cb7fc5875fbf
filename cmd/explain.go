package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/pyqdeck/internal/explain"
	"github.com/abhisek/pyqdeck/internal/kvstore"
	"github.com/abhisek/pyqdeck/internal/llm"
)

var explainRefresh bool

var explainCmd = &cobra.Command{
	Use:   "explain <question-id>",
	Short: "Print an AI explanation for a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cat, err := resolveCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		q, anc, ok := cat.Question(args[0])
		if !ok {
			return fmt.Errorf("unknown question ID %q", args[0])
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

		provider, err := llm.NewProviderFromEnv(ctx)
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		cache := kvstore.NewChunked(kv, kvstore.DefaultChunkSize)
		svc := explain.NewService(provider, cache, explain.DefaultConfig())

		if explainRefresh {
			if err := svc.Invalidate(ctx, q.QuestionID); err != nil {
				return fmt.Errorf("drop cached explanation: %w", err)
			}
		}

		out, err := svc.Explain(ctx, q, anc)
		if err != nil {
			return err
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	explainCmd.Flags().BoolVar(&explainRefresh, "refresh", false, "Ignore the cached explanation and regenerate")
}
