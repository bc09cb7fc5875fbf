// Package bookmarks persists the set of bookmarked question IDs.
// Bookmark membership is independent of completion state.
package bookmarks

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"

	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/kvstore"
)

const bookmarksKey = "bookmarks"

// Store persists the bookmark set as one JSON array under a single key.
// Every toggle rewrites the whole set, so a write either lands complete
// or leaves the previous set intact.
type Store struct {
	kv kvstore.Store
}

// NewStore creates a bookmark store on top of kv.
func NewStore(kv kvstore.Store) *Store {
	return &Store{kv: kv}
}

// load reads the current set. Read failures and malformed blobs both
// degrade to an empty set; the key is left alone so a later successful
// write simply replaces it.
func (s *Store) load(ctx context.Context) map[string]bool {
	raw, ok, err := s.kv.Get(ctx, bookmarksKey)
	if err != nil {
		slog.Warn("bookmark read failed", "error", err)
		return map[string]bool{}
	}
	if !ok {
		return map[string]bool{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slog.Warn("bookmark blob malformed, treating as empty", "error", err)
		return map[string]bool{}
	}

	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (s *Store) save(ctx context.Context, set map[string]bool) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	raw, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, bookmarksKey, string(raw))
}

// IsBookmarked reports membership for one question.
func (s *Store) IsBookmarked(ctx context.Context, questionID string) bool {
	return s.load(ctx)[questionID]
}

// Toggle flips membership and persists the whole set in one write. It
// returns the resulting state; on a write failure the persisted set is
// unchanged and the prior membership is returned with the error.
func (s *Store) Toggle(ctx context.Context, questionID string) (bool, error) {
	set := s.load(ctx)
	was := set[questionID]

	if was {
		delete(set, questionID)
	} else {
		set[questionID] = true
	}

	if err := s.save(ctx, set); err != nil {
		slog.Warn("bookmark write failed", "question", questionID, "error", err)
		return was, err
	}
	return !was, nil
}

// List returns all bookmarked question IDs, sorted.
func (s *Store) List(ctx context.Context) []string {
	set := s.load(ctx)
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Resolved is a bookmark joined back to its catalog entry.
type Resolved struct {
	Question catalog.Question
	Ancestry catalog.Ancestry
}

// Resolve maps the bookmark set back to full questions with ancestry
// for the "all bookmarks" view. IDs no longer present in the catalog
// are skipped.
func (s *Store) Resolve(ctx context.Context, c *catalog.Catalog) []Resolved {
	var out []Resolved
	for _, id := range s.List(ctx) {
		q, anc, ok := c.Question(id)
		if !ok {
			continue
		}
		out = append(out, Resolved{Question: q, Ancestry: anc})
	}
	return out
}
