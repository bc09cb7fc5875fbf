// Package browse implements the catalog drill-down: branch to semester
// to subject, each level annotated with completion progress.
package browse

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqdeck/internal/bookmarks"
	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/explain"
	"github.com/abhisek/pyqdeck/internal/journey"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/router"
	"github.com/abhisek/pyqdeck/internal/screen"
	"github.com/abhisek/pyqdeck/internal/screens/questions"
	"github.com/abhisek/pyqdeck/internal/streak"
	"github.com/abhisek/pyqdeck/internal/ui/components"
	"github.com/abhisek/pyqdeck/internal/ui/theme"
)

// Deps bundles everything the drill-down and its child screens need.
type Deps struct {
	Catalog    *catalog.Catalog
	Completion *progress.CompletionStore
	Bookmarks  *bookmarks.Store
	Streak     *streak.Tracker
	Journey    *journey.Store
	Explain    *explain.Service // nil when no LLM provider is configured
}

type level int

const (
	levelBranch level = iota
	levelSemester
	levelSubject
)

// entry is one selectable row with its aggregated progress.
type entry struct {
	id       string
	label    string
	ids      []string
	summary  progress.Summary
	semester *catalog.Semester
	subject  *catalog.Subject
}

// BrowseScreen is the hierarchical catalog navigator.
type BrowseScreen struct {
	deps Deps

	lvl      level
	branch   *catalog.Branch
	semester *catalog.Semester

	entries []entry
	cursor  int
}

var _ screen.Screen = (*BrowseScreen)(nil)

// New creates the browse screen at the branch level.
func New(deps Deps) *BrowseScreen {
	s := &BrowseScreen{deps: deps}
	s.loadBranches()
	return s
}

// NewAtSubject creates a questions screen directly for a saved journey,
// reporting whether the stored IDs still resolve.
func NewAtSubject(deps Deps, rec journey.Record) (screen.Screen, bool) {
	res, err := deps.Catalog.Locate(catalog.Path{
		BranchID:   rec.BranchID,
		SemesterID: rec.SemID,
		SubjectID:  rec.SubjectID,
	})
	if err != nil || res.Subject == nil {
		return nil, false
	}
	anc := ancestryFor(res)
	return questions.New(questionsDeps(deps), *res.Subject, anc), true
}

// Init refreshes the progress annotations. The router re-runs it when
// the screen regains focus after a deck is closed.
func (s *BrowseScreen) Init() tea.Cmd {
	s.loadSummaries()
	return nil
}

func (s *BrowseScreen) WantsEsc() bool {
	return s.lvl != levelBranch
}

func (s *BrowseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
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
		if s.cursor < len(s.entries)-1 {
			s.cursor++
		}
	case "enter":
		return s, s.descend()
	case "esc", "backspace":
		s.ascend()
	}
	return s, nil
}

func (s *BrowseScreen) descend() tea.Cmd {
	if s.cursor < 0 || s.cursor >= len(s.entries) {
		return nil
	}
	e := s.entries[s.cursor]

	switch s.lvl {
	case levelBranch:
		branch, ok := s.deps.Catalog.Branch(e.id)
		if !ok {
			return nil
		}
		s.branch = branch
		s.lvl = levelSemester
		s.loadSemesters()
	case levelSemester:
		s.semester = e.semester
		s.lvl = levelSubject
		s.loadSubjects()
	case levelSubject:
		return s.openSubject(e.subject)
	}
	return nil
}

func (s *BrowseScreen) ascend() {
	switch s.lvl {
	case levelSemester:
		s.lvl = levelBranch
		s.branch = nil
		s.loadBranches()
	case levelSubject:
		s.lvl = levelSemester
		s.semester = nil
		s.loadSemesters()
	}
}

// openSubject records the journey and pushes the questions screen.
func (s *BrowseScreen) openSubject(sub *catalog.Subject) tea.Cmd {
	anc := catalog.Ancestry{
		BranchID:       s.branch.ID,
		BranchName:     s.branch.Name,
		SemesterID:     s.semester.ID,
		SemesterNumber: s.semester.Number,
		SubjectID:      sub.ID,
		SubjectName:    sub.Name,
		SubjectCode:    sub.Code,
	}

	// Journey saves are best-effort; navigation proceeds either way.
	_ = s.deps.Journey.Save(context.Background(), journey.Record{
		BranchID:     anc.BranchID,
		SemID:        anc.SemesterID,
		SubjectID:    anc.SubjectID,
		BranchName:   anc.BranchName,
		SemesterName: fmt.Sprintf("Semester %d", anc.SemesterNumber),
		SubjectName:  anc.SubjectName,
	})

	next := questions.New(questionsDeps(s.deps), *sub, anc)
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func questionsDeps(d Deps) questions.Deps {
	return questions.Deps{
		Completion: d.Completion,
		Bookmarks:  d.Bookmarks,
		Streak:     d.Streak,
		Explain:    d.Explain,
	}
}

func ancestryFor(res *catalog.LocateResult) catalog.Ancestry {
	return catalog.Ancestry{
		BranchID:       res.Branch.ID,
		BranchName:     res.Branch.Name,
		SemesterID:     res.Semester.ID,
		SemesterNumber: res.Semester.Number,
		SubjectID:      res.Subject.ID,
		SubjectName:    res.Subject.Name,
		SubjectCode:    res.Subject.Code,
	}
}

func (s *BrowseScreen) loadBranches() {
	s.entries = nil
	for _, b := range s.deps.Catalog.Branches() {
		label := b.Name
		if b.Icon != "" {
			label = b.Icon + " " + b.Name
		}
		s.entries = append(s.entries, entry{
			id:    b.ID,
			label: label,
			ids:   b.QuestionIDs(),
		})
	}
	s.loadSummaries()
	s.cursor = 0
}

func (s *BrowseScreen) loadSemesters() {
	s.entries = nil
	for i := range s.branch.Semesters {
		sem := &s.branch.Semesters[i]
		s.entries = append(s.entries, entry{
			id:       sem.ID,
			label:    fmt.Sprintf("Semester %d", sem.Number),
			ids:      sem.QuestionIDs(),
			semester: sem,
		})
	}
	s.loadSummaries()
	s.cursor = 0
}

func (s *BrowseScreen) loadSubjects() {
	s.entries = nil
	for i := range s.semester.Subjects {
		sub := &s.semester.Subjects[i]
		s.entries = append(s.entries, entry{
			id:      sub.ID,
			label:   fmt.Sprintf("%s — %s", sub.Code, sub.Name),
			ids:     sub.QuestionIDs(),
			subject: sub,
		})
	}
	s.loadSummaries()
	s.cursor = 0
}

func (s *BrowseScreen) loadSummaries() {
	ctx := context.Background()
	for i := range s.entries {
		s.entries[i].summary = progress.ForNode(ctx, s.deps.Completion, s.entries[i].ids)
	}
}

func (s *BrowseScreen) Title() string {
	switch s.lvl {
	case levelSemester:
		return s.branch.Name
	case levelSubject:
		return fmt.Sprintf("%s · Semester %d", s.branch.Name, s.semester.Number)
	default:
		return "Browse"
	}
}

func (s *BrowseScreen) View(width, _ int) string {
	if len(s.entries) == 0 {
		return theme.Hint.Render("  Nothing here yet.")
	}

	barWidth := width - 8
	if barWidth > 60 {
		barWidth = 60
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, e := range s.entries {
		prefix := "    "
		labelStyle := theme.Unselected
		if i == s.cursor {
			prefix = "  ▸ "
			labelStyle = theme.Selected
		}
		b.WriteString(prefix + labelStyle.Render(e.label) + "\n")

		bar := components.NewProgressBar("", e.summary.Completed, e.summary.Total,
			e.summary.Percent, e.summary.HasData, barWidth)
		b.WriteString("      " + bar.View() + "\n\n")
	}
	return b.String()
}
