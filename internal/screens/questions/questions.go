// Package questions renders a subject's question list with year and
// chapter filters, completion and bookmark toggles, and an AI
// explanation pane.
package questions

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqdeck/internal/bookmarks"
	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/explain"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/screen"
	"github.com/abhisek/pyqdeck/internal/streak"
	"github.com/abhisek/pyqdeck/internal/ui/components"
	"github.com/abhisek/pyqdeck/internal/ui/layout"
	"github.com/abhisek/pyqdeck/internal/ui/theme"
)

// Deps bundles the stores the questions screen reads and writes.
type Deps struct {
	Completion *progress.CompletionStore
	Bookmarks  *bookmarks.Store
	Streak     *streak.Tracker
	Explain    *explain.Service // nil when no LLM provider is configured
}

// QuestionsScreen lists a subject's questions.
type QuestionsScreen struct {
	deps     Deps
	subject  catalog.Subject
	ancestry catalog.Ancestry

	all      []catalog.Question
	years    []int
	chapters []string

	yearIdx    int // -1 means all years
	chapterIdx int // -1 means all chapters
	search     components.FilterInput

	visible      []catalog.Question
	cursor       int
	scrollOffset int

	completed  map[string]bool
	bookmarked map[string]bool

	detail *detailState
	banner string
}

// detailState is the expanded single-question view.
type detailState struct {
	q       catalog.Question
	mc      *components.MultiChoice
	expl    string
	loading bool
}

var _ screen.Screen = (*QuestionsScreen)(nil)

// New creates the questions screen for a subject. Questions are shown
// in default order: newest year first, paper order within a year,
// year-unknown questions last.
func New(deps Deps, subject catalog.Subject, anc catalog.Ancestry) *QuestionsScreen {
	all := make([]catalog.Question, len(subject.Questions))
	copy(all, subject.Questions)
	catalog.SortDefault(all)

	s := &QuestionsScreen{
		deps:       deps,
		subject:    subject,
		ancestry:   anc,
		all:        all,
		years:      catalog.UniqueYears(all),
		chapters:   catalog.UniqueChapters(all),
		yearIdx:    -1,
		chapterIdx: -1,
		search:     components.NewFilterInput("search question text"),
		completed:  map[string]bool{},
		bookmarked: map[string]bool{},
	}
	s.applyFilters()
	return s
}

func (s *QuestionsScreen) Init() tea.Cmd {
	ctx := context.Background()
	// A failed read degrades to an all-unmarked list.
	s.completed, _ = s.deps.Completion.BulkLoad(ctx, s.subject.QuestionIDs())
	for _, id := range s.deps.Bookmarks.List(ctx) {
		s.bookmarked[id] = true
	}
	return nil
}

// WantsEsc keeps Esc inside the screen while a detail view or the
// search input is open.
func (s *QuestionsScreen) WantsEsc() bool {
	return s.detail != nil || s.search.Active() || s.banner != ""
}

func (s *QuestionsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explanationMsg:
		if s.detail != nil && s.detail.q.QuestionID == msg.QuestionID {
			s.detail.loading = false
			if msg.Err != nil {
				s.banner = msg.Err.Error()
			} else {
				s.detail.expl = msg.Markdown
			}
		}
		return s, nil

	case tea.KeyMsg:
		if s.banner != "" {
			// Any key dismisses the error banner.
			s.banner = ""
			return s, nil
		}
		if s.search.Active() {
			return s.updateSearch(msg)
		}
		if s.detail != nil {
			return s.updateDetail(msg)
		}
		return s.updateList(msg)
	}

	return s, nil
}

func (s *QuestionsScreen) updateSearch(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "enter":
		s.search.Deactivate()
		return s, nil
	case "esc":
		s.search.Deactivate()
		s.search.Clear()
		s.applyFilters()
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.applyFilters()
	return s, cmd
}

func (s *QuestionsScreen) updateList(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible)-1 {
			s.cursor++
		}
	case "enter":
		if q, ok := s.current(); ok {
			s.openDetail(q)
		}
	case " ", "space":
		return s, s.toggleCompleted()
	case "b":
		s.toggleBookmark()
	case "e":
		if q, ok := s.current(); ok {
			s.openDetail(q)
			return s, s.requestExplanation(q)
		}
	case "y":
		s.cycleYear()
	case "c":
		s.cycleChapter()
	case "/":
		return s, s.search.Activate()
	}
	return s, nil
}

func (s *QuestionsScreen) updateDetail(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	d := s.detail
	switch msg.String() {
	case "esc", "q":
		s.detail = nil
		return s, nil
	case " ", "space":
		return s, s.toggleCompleted()
	case "b":
		s.toggleBookmark()
		return s, nil
	case "e":
		if d.expl == "" && !d.loading {
			return s, s.requestExplanation(d.q)
		}
		return s, nil
	}

	if d.mc != nil {
		wasSubmitted := d.mc.Submitted
		mc, cmd := d.mc.Update(msg)
		d.mc = &mc
		if !wasSubmitted && mc.Submitted && mc.IsCorrect() {
			// A correct attempt marks the question done.
			return s, tea.Batch(cmd, s.toggleOn())
		}
		return s, cmd
	}
	return s, nil
}

func (s *QuestionsScreen) current() (catalog.Question, bool) {
	if s.cursor < 0 || s.cursor >= len(s.visible) {
		return catalog.Question{}, false
	}
	return s.visible[s.cursor], true
}

func (s *QuestionsScreen) openDetail(q catalog.Question) {
	d := &detailState{q: q}
	if q.Type == "mcq" && len(q.Options) > 0 {
		mc := components.NewMultiChoice(q.Text, q.Options, q.AnswerIndex())
		d.mc = &mc
	}
	if s.deps.Explain != nil && s.deps.Explain.Cached(context.Background(), q.QuestionID) {
		if md, err := s.deps.Explain.Explain(context.Background(), q, s.ancestry); err == nil {
			d.expl = md
		}
	}
	s.detail = d
}

// toggleCompleted flips the current question's done state, recording
// streak activity when a question transitions to done.
func (s *QuestionsScreen) toggleCompleted() tea.Cmd {
	q, ok := s.currentOrDetail()
	if !ok {
		return nil
	}

	ctx := context.Background()
	next := !s.completed[q.QuestionID]
	if err := s.deps.Completion.SetCompleted(ctx, q.QuestionID, next); err != nil {
		s.banner = "could not save progress: " + err.Error()
		return nil
	}
	s.completed[q.QuestionID] = next

	if !next {
		return nil
	}
	rec, err := s.deps.Streak.RecordActivity(ctx, time.Now())
	if err != nil {
		return nil
	}
	return func() tea.Msg { return StreakChangedMsg{Record: rec} }
}

// toggleOn marks the current question done if it is not already.
func (s *QuestionsScreen) toggleOn() tea.Cmd {
	if q, ok := s.currentOrDetail(); ok && !s.completed[q.QuestionID] {
		return s.toggleCompleted()
	}
	return nil
}

func (s *QuestionsScreen) toggleBookmark() {
	q, ok := s.currentOrDetail()
	if !ok {
		return
	}
	was, err := s.deps.Bookmarks.Toggle(context.Background(), q.QuestionID)
	if err != nil {
		s.banner = "could not save bookmark: " + err.Error()
		return
	}
	s.bookmarked[q.QuestionID] = !was
}

func (s *QuestionsScreen) currentOrDetail() (catalog.Question, bool) {
	if s.detail != nil {
		return s.detail.q, true
	}
	return s.current()
}

func (s *QuestionsScreen) requestExplanation(q catalog.Question) tea.Cmd {
	if s.deps.Explain == nil {
		s.banner = "AI explanations are unavailable: no LLM provider configured"
		if s.detail != nil {
			s.detail.loading = false
		}
		return nil
	}
	if s.detail != nil {
		s.detail.loading = true
	}
	svc, anc := s.deps.Explain, s.ancestry
	return func() tea.Msg {
		md, err := svc.Explain(context.Background(), q, anc)
		return explanationMsg{QuestionID: q.QuestionID, Markdown: md, Err: err}
	}
}

// cycleYear advances the year filter: all -> years[0] -> ... -> all.
func (s *QuestionsScreen) cycleYear() {
	if len(s.years) == 0 {
		return
	}
	s.yearIdx++
	if s.yearIdx >= len(s.years) {
		s.yearIdx = -1
	}
	s.applyFilters()
}

func (s *QuestionsScreen) cycleChapter() {
	if len(s.chapters) == 0 {
		return
	}
	s.chapterIdx++
	if s.chapterIdx >= len(s.chapters) {
		s.chapterIdx = -1
	}
	s.applyFilters()
}

func (s *QuestionsScreen) applyFilters() {
	years := map[int]bool{}
	if s.yearIdx >= 0 {
		years[s.years[s.yearIdx]] = true
	}
	chapters := map[string]bool{}
	if s.chapterIdx >= 0 {
		chapters[s.chapters[s.chapterIdx]] = true
	}

	filtered := catalog.Filter(s.all, years, chapters)

	if term := strings.ToLower(strings.TrimSpace(s.search.Value())); term != "" {
		var matched []catalog.Question
		for _, q := range filtered {
			if strings.Contains(strings.ToLower(q.Text), term) {
				matched = append(matched, q)
			}
		}
		filtered = matched
	}

	s.visible = filtered
	if s.cursor >= len(s.visible) {
		s.cursor = len(s.visible) - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
	s.scrollOffset = 0
}

func (s *QuestionsScreen) Title() string {
	return s.subject.Name
}

func (s *QuestionsScreen) KeyHints() []layout.KeyHint {
	if s.detail != nil {
		return []layout.KeyHint{
			{Key: "Space", Description: "Done"},
			{Key: "B", Description: "Bookmark"},
			{Key: "E", Description: "Explain"},
			{Key: "Esc", Description: "Close"},
		}
	}
	return []layout.KeyHint{
		{Key: "Space", Description: "Done"},
		{Key: "B", Description: "Bookmark"},
		{Key: "E", Description: "Explain"},
		{Key: "Y/C", Description: "Filter"},
		{Key: "/", Description: "Search"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *QuestionsScreen) View(width, height int) string {
	if s.banner != "" {
		return theme.Banner.Render(s.banner) + "\n\n" + theme.Hint.Render("press any key to dismiss")
	}
	if s.detail != nil {
		return s.viewDetail(width, height)
	}
	return s.viewList(width, height)
}

func (s *QuestionsScreen) viewList(width, height int) string {
	var b strings.Builder

	b.WriteString(s.renderFilterBar(width) + "\n\n")

	if len(s.visible) == 0 {
		b.WriteString(theme.Hint.Render("  No questions match the current filters."))
		return b.String()
	}

	listHeight := height - 3
	if listHeight < 1 {
		listHeight = 1
	}
	s.adjustScroll(listHeight)

	shown := 0
	for i := s.scrollOffset; i < len(s.visible) && shown < listHeight; i++ {
		b.WriteString(s.renderRow(s.visible[i], i == s.cursor, width) + "\n")
		shown++
	}

	return b.String()
}

func (s *QuestionsScreen) renderFilterBar(width int) string {
	year := "all years"
	if s.yearIdx >= 0 {
		year = fmt.Sprintf("%d", s.years[s.yearIdx])
	}
	chapter := "all chapters"
	if s.chapterIdx >= 0 {
		chapter = s.chapters[s.chapterIdx]
	}

	yearStyle, chapterStyle := theme.FilterInactive, theme.FilterInactive
	if s.yearIdx >= 0 {
		yearStyle = theme.FilterActive
	}
	if s.chapterIdx >= 0 {
		chapterStyle = theme.FilterActive
	}

	bar := "  " + yearStyle.Render(year) + " " + chapterStyle.Render(chapter)
	if s.search.Active() || s.search.Value() != "" {
		bar += "  " + s.search.View()
	}
	count := theme.Hint.Render(fmt.Sprintf("  %d of %d", len(s.visible), len(s.all)))
	return bar + count
}

func (s *QuestionsScreen) renderRow(q catalog.Question, selected bool, width int) string {
	mark := "[ ]"
	if s.completed[q.QuestionID] {
		mark = theme.Completed.Render("[✔]")
	}
	star := " "
	if s.bookmarked[q.QuestionID] {
		star = theme.Bookmarked.Render("★")
	}

	year := "----"
	if q.Year > 0 {
		year = fmt.Sprintf("%d", q.Year)
	}

	text := q.Text
	maxText := width - 24
	if r := []rune(text); maxText > 0 && len(r) > maxText {
		text = string(r[:maxText-1]) + "…"
	}

	line := fmt.Sprintf("%s %s %s %-4s  %s", mark, star, year, q.QNumber, text)
	if selected {
		return theme.Selected.Render("▸ " + line)
	}
	return theme.Unselected.Render("  " + line)
}

func (s *QuestionsScreen) viewDetail(width, _ int) string {
	d := s.detail
	var b strings.Builder

	meta := fmt.Sprintf("%s  ·  %s", s.subject.Code, d.q.QNumber)
	if d.q.Year > 0 {
		meta += fmt.Sprintf("  ·  %d", d.q.Year)
	}
	if d.q.Chapter != "" {
		meta += "  ·  " + d.q.Chapter
	}
	if d.q.Marks > 0 {
		meta += fmt.Sprintf("  ·  %g marks", d.q.Marks)
	}
	b.WriteString("  " + theme.Subtitle.Render(meta) + "\n\n")

	if d.mc != nil {
		b.WriteString(d.mc.View())
	} else {
		b.WriteString(theme.Body.Render(d.q.Text) + "\n")
	}

	status := ""
	if s.completed[d.q.QuestionID] {
		status += theme.Completed.Render("✔ done") + "  "
	}
	if s.bookmarked[d.q.QuestionID] {
		status += theme.Bookmarked.Render("★ bookmarked")
	}
	if status != "" {
		b.WriteString("\n" + status + "\n")
	}

	switch {
	case d.loading:
		b.WriteString("\n" + theme.Hint.Render("Generating explanation…") + "\n")
	case d.expl != "":
		b.WriteString("\n" + theme.Card.Width(width-4).Render(d.expl) + "\n")
	}

	return b.String()
}

func (s *QuestionsScreen) adjustScroll(visibleRows int) {
	if s.cursor < s.scrollOffset {
		s.scrollOffset = s.cursor
	}
	if s.cursor >= s.scrollOffset+visibleRows {
		s.scrollOffset = s.cursor - visibleRows + 1
	}
	if s.scrollOffset < 0 {
		s.scrollOffset = 0
	}
}
