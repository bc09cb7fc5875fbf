package progress

import (
	"context"
	"log/slog"

	"github.com/abhisek/pyqdeck/internal/kvstore"
)

// completedPrefix namespaces completion keys. Question IDs are globally
// unique, so a single flat namespace keyed by ID is enough.
const completedPrefix = "completed:"

// CompletionStore persists the questionId → completed flag map.
// Entries are never deleted; marking a question not-done stores "false".
type CompletionStore struct {
	kv kvstore.Store
}

// NewCompletionStore creates a CompletionStore on top of kv.
func NewCompletionStore(kv kvstore.Store) *CompletionStore {
	return &CompletionStore{kv: kv}
}

func completedKey(questionID string) string {
	return completedPrefix + questionID
}

// IsCompleted reports whether the question is marked done. Absent keys
// and read failures both report false.
func (s *CompletionStore) IsCompleted(ctx context.Context, questionID string) bool {
	v, ok, err := s.kv.Get(ctx, completedKey(questionID))
	if err != nil {
		slog.Warn("completion read failed", "question", questionID, "error", err)
		return false
	}
	return ok && v == "true"
}

// SetCompleted persists the flag. On failure the error is logged and
// returned; the previously persisted state is untouched and callers
// that updated optimistically may re-read to verify.
func (s *CompletionStore) SetCompleted(ctx context.Context, questionID string, done bool) error {
	value := "false"
	if done {
		value = "true"
	}
	if err := s.kv.Set(ctx, completedKey(questionID), value); err != nil {
		slog.Warn("completion write failed", "question", questionID, "done", done, "error", err)
		return err
	}
	return nil
}

// BulkLoad reads completion state for many questions in one batched
// MultiGet. A read failure is logged and returned along with an empty
// map, so callers can either degrade to all-incomplete or surface the
// unavailability.
func (s *CompletionStore) BulkLoad(ctx context.Context, questionIDs []string) (map[string]bool, error) {
	keys := make([]string, len(questionIDs))
	for i, id := range questionIDs {
		keys[i] = completedKey(id)
	}

	values, err := s.kv.MultiGet(ctx, keys)
	if err != nil {
		slog.Warn("completion bulk read failed", "count", len(questionIDs), "error", err)
		return map[string]bool{}, err
	}

	done := make(map[string]bool, len(values))
	for _, id := range questionIDs {
		if values[completedKey(id)] == "true" {
			done[id] = true
		}
	}
	return done, nil
}
