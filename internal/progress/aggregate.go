// Package progress computes completion aggregates over the catalog tree
// and persists per-question completion state.
package progress

import (
	"context"
	"math"
)

// Summary is the completion aggregate for one node of the tree.
// HasData is false when the node has no questions at all, which the UI
// renders as "No Data" rather than "0% done".
type Summary struct {
	Total     int
	Completed int
	Percent   int
	HasData   bool
}

// Aggregate computes the summary for a set of question IDs against a
// completion map. Absent map keys count as not completed. Question IDs
// are globally unique, so callers aggregate any level of the tree by
// flat concatenation of descendant IDs without double counting.
func Aggregate(questionIDs []string, completion map[string]bool) Summary {
	s := Summary{Total: len(questionIDs)}
	if s.Total == 0 {
		return s
	}
	s.HasData = true

	for _, id := range questionIDs {
		if completion[id] {
			s.Completed++
		}
	}
	s.Percent = int(math.Round(float64(s.Completed) / float64(s.Total) * 100))
	return s
}

// ForNode bulk-loads completion state for the given IDs and aggregates
// it in one call. When the bulk read fails the summary reports
// HasData false, so the UI shows "No Data" instead of a misleading 0%.
func ForNode(ctx context.Context, store *CompletionStore, questionIDs []string) Summary {
	done, err := store.BulkLoad(ctx, questionIDs)
	if err != nil {
		return Summary{Total: len(questionIDs)}
	}
	return Aggregate(questionIDs, done)
}
