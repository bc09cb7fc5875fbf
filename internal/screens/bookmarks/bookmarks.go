// Package bookmarks renders the saved-question list resolved against
// the catalog.
package bookmarks

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	bookmarkstore "github.com/abhisek/pyqdeck/internal/bookmarks"
	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/screen"
	"github.com/abhisek/pyqdeck/internal/ui/layout"
	"github.com/abhisek/pyqdeck/internal/ui/theme"
)

// BookmarksScreen lists every bookmarked question with its subject
// context. Bookmarks whose question no longer exists in the catalog
// are silently skipped.
type BookmarksScreen struct {
	store      *bookmarkstore.Store
	completion *progress.CompletionStore
	catalog    *catalog.Catalog

	resolved []bookmarkstore.Resolved
	done     map[string]bool
	cursor   int
}

var _ screen.Screen = (*BookmarksScreen)(nil)

// New creates the bookmarks screen.
func New(store *bookmarkstore.Store, completion *progress.CompletionStore, cat *catalog.Catalog) *BookmarksScreen {
	return &BookmarksScreen{
		store:      store,
		completion: completion,
		catalog:    cat,
		done:       map[string]bool{},
	}
}

func (s *BookmarksScreen) Init() tea.Cmd {
	s.reload()
	return nil
}

func (s *BookmarksScreen) reload() {
	ctx := context.Background()
	s.resolved = s.store.Resolve(ctx, s.catalog)

	ids := make([]string, len(s.resolved))
	for i, r := range s.resolved {
		ids[i] = r.Question.QuestionID
	}
	s.done, _ = s.completion.BulkLoad(ctx, ids)

	if s.cursor >= len(s.resolved) {
		s.cursor = len(s.resolved) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

func (s *BookmarksScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.resolved)-1 {
			s.cursor++
		}
	case "x", "b":
		if s.cursor < len(s.resolved) {
			id := s.resolved[s.cursor].Question.QuestionID
			if _, err := s.store.Toggle(context.Background(), id); err == nil {
				s.reload()
			}
		}
	}
	return s, nil
}

func (s *BookmarksScreen) Title() string {
	return "Bookmarks"
}

func (s *BookmarksScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "X", Description: "Remove"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BookmarksScreen) View(width, _ int) string {
	if len(s.resolved) == 0 {
		return "\n" + theme.Hint.Render("  No bookmarks yet. Press B on any question to save it here.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, r := range s.resolved {
		mark := "[ ]"
		if s.done[r.Question.QuestionID] {
			mark = theme.Completed.Render("[✔]")
		}

		where := fmt.Sprintf("%s · Sem %d · %s", r.Ancestry.BranchName, r.Ancestry.SemesterNumber, r.Ancestry.SubjectCode)
		year := ""
		if r.Question.Year > 0 {
			year = fmt.Sprintf(" (%d)", r.Question.Year)
		}

		text := r.Question.Text
		maxText := width - 10
		if runes := []rune(text); maxText > 0 && len(runes) > maxText {
			text = string(runes[:maxText-1]) + "…"
		}

		prefix := "  "
		style := theme.Unselected
		if i == s.cursor {
			prefix = "▸ "
			style = theme.Selected
		}

		b.WriteString(prefix + mark + " " + style.Render(text) + "\n")
		b.WriteString("       " + theme.Hint.Render(where+year) + "\n\n")
	}
	return b.String()
}
