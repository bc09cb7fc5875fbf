// Package home is the landing screen: streak summary, overall
// progress, and the main menu.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/pyqdeck/internal/journey"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/router"
	"github.com/abhisek/pyqdeck/internal/screen"
	"github.com/abhisek/pyqdeck/internal/screens/bookmarks"
	"github.com/abhisek/pyqdeck/internal/screens/browse"
	"github.com/abhisek/pyqdeck/internal/streak"
	"github.com/abhisek/pyqdeck/internal/ui/components"
	"github.com/abhisek/pyqdeck/internal/ui/layout"
	"github.com/abhisek/pyqdeck/internal/ui/theme"
)

// HomeScreen is the main landing screen of the application.
type HomeScreen struct {
	deps       browse.Deps
	menu       components.Menu
	streakRec  streak.Record
	overall    progress.Summary
	firstVisit bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen. deps is shared with the browse flow.
func New(deps browse.Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}

	ctx := context.Background()
	h.firstVisit = deps.Journey != nil && !deps.Journey.OnboardingSeen(ctx)
	if h.firstVisit {
		_ = deps.Journey.MarkOnboardingSeen(ctx)
	}

	h.refresh()
	return h
}

// refresh re-reads the stores. Runs on creation and again from Init
// whenever the screen regains focus, so progress made in a deck shows
// up after navigating back.
func (h *HomeScreen) refresh() {
	ctx := context.Background()
	deps := h.deps

	h.streakRec = streak.Record{}
	if deps.Streak != nil {
		h.streakRec = deps.Streak.Load(ctx)
	}

	h.overall = progress.ForNode(ctx, deps.Completion, deps.Catalog.AllQuestionIDs())

	journeyRec, hasJourney := journey.Record{}, false
	if deps.Journey != nil {
		journeyRec, hasJourney = deps.Journey.Load(ctx)
	}

	items := []components.MenuItem{
		{Label: "Browse question papers", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: browse.New(deps)}
			}
		}},
	}

	if hasJourney {
		rec := journeyRec
		items = append(items, components.MenuItem{
			Label: "Resume",
			Hint:  fmt.Sprintf("%s · %s · %s", rec.BranchName, rec.SemesterName, rec.SubjectName),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					resumed, ok := browse.NewAtSubject(deps, rec)
					if !ok {
						// Stale journey: fall back to the drill-down.
						return router.PushScreenMsg{Screen: browse.New(deps)}
					}
					return router.PushScreenMsg{Screen: resumed}
				}
			},
		})
	}

	items = append(items,
		components.MenuItem{Label: "Bookmarks", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{
					Screen: bookmarks.New(deps.Bookmarks, deps.Completion, deps.Catalog),
				}
			}
		}},
		components.MenuItem{Label: "Quit", Action: func() tea.Cmd {
			return tea.Quit
		}},
	)

	selected := h.menu.Selected
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "q" {
		return h, tea.Quit
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑/↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	cw := width - 8
	if cw > 64 {
		cw = 64
	}
	if cw < 24 {
		cw = 24
	}

	var sections []string

	title := theme.Title.Width(cw).Render("pyqdeck") + "\n" +
		theme.Subtitle.Width(cw).Render("previous-year questions, one deck at a time")
	sections = append(sections, title)

	if h.firstVisit {
		sections = append(sections, theme.Card.Width(cw).Render(
			"Welcome! Pick your branch and semester to open a subject's\n"+
				"question deck. Space marks a question done, B bookmarks it,\n"+
				"and E asks for an AI explanation."))
	}

	sections = append(sections, h.renderStats(cw))
	sections = append(sections, h.menu.View())

	content := strings.Join(sections, "\n\n")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func (h *HomeScreen) renderStats(cw int) string {
	streakPart := fmt.Sprintf("🔥 %d day streak", h.streakRec.Streak)
	if h.streakRec.BestStreak > h.streakRec.Streak {
		streakPart += theme.Hint.Render(fmt.Sprintf("  (best %d)", h.streakRec.BestStreak))
	}

	var progressPart string
	if h.overall.HasData {
		progressPart = fmt.Sprintf("✔ %d/%d solved (%d%%)", h.overall.Completed, h.overall.Total, h.overall.Percent)
	} else {
		progressPart = theme.Hint.Render("progress unavailable")
	}

	line := theme.Body.Render(streakPart) + "      " + theme.Body.Render(progressPart)
	return theme.Card.Width(cw).Render(line)
}
