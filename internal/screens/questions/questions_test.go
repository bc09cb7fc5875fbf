package questions

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/pyqdeck/internal/bookmarks"
	"github.com/abhisek/pyqdeck/internal/catalog"
	"github.com/abhisek/pyqdeck/internal/kvstore"
	"github.com/abhisek/pyqdeck/internal/progress"
	"github.com/abhisek/pyqdeck/internal/screen"
	"github.com/abhisek/pyqdeck/internal/streak"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testSubject() catalog.Subject {
	return catalog.Subject{
		ID:   "cs999",
		Name: "Test Subject",
		Code: "CS999",
		Questions: []catalog.Question{
			{QuestionID: "q-old", Year: 2021, QNumber: "2", Chapter: "Module 1: Basics", Text: "Define a binary tree.", Type: "descriptive", Marks: 5},
			{QuestionID: "q-new", Year: 2023, QNumber: "1", Chapter: "Module 2: Graphs", Text: "Explain BFS traversal.", Type: "descriptive", Marks: 10},
			{QuestionID: "q-mcq", Year: 2023, QNumber: "2", Chapter: "Module 1: Basics", Text: "Which structure is FIFO?", Type: "mcq", Marks: 1,
				Options: []string{"Stack", "Queue", "Tree"}, Answer: 2},
		},
	}
}

func testAncestry() catalog.Ancestry {
	return catalog.Ancestry{
		BranchID: "cse", BranchName: "Computer Science",
		SemesterID: "cse-s3", SemesterNumber: 3,
		SubjectID: "cs999", SubjectName: "Test Subject", SubjectCode: "CS999",
	}
}

func testScreen(mem *kvstore.Memory) *QuestionsScreen {
	deps := Deps{
		Completion: progress.NewCompletionStore(mem),
		Bookmarks:  bookmarks.NewStore(mem),
		Streak:     streak.NewTracker(mem),
	}
	s := New(deps, testSubject(), testAncestry())
	s.Init()
	return s
}

func TestQuestionsScreen_Title(t *testing.T) {
	s := testScreen(kvstore.NewMemory())
	if s.Title() != "Test Subject" {
		t.Errorf("Title = %q, want %q", s.Title(), "Test Subject")
	}
}

func TestQuestionsScreen_DefaultOrder(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	var ids []string
	for _, q := range s.visible {
		ids = append(ids, q.QuestionID)
	}
	want := []string{"q-new", "q-mcq", "q-old"}
	if len(ids) != len(want) {
		t.Fatalf("visible = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("visible[%d] = %q, want %q", i, ids[i], want[i])
		}
	}
}

func TestQuestionsScreen_YearFilterCycles(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	// First press narrows to the newest year.
	s.Update(keyPress('y'))
	if len(s.visible) != 2 {
		t.Fatalf("after one cycle: %d visible, want 2", len(s.visible))
	}
	for _, q := range s.visible {
		if q.Year != 2023 {
			t.Errorf("visible question %s has year %d, want 2023", q.QuestionID, q.Year)
		}
	}

	// Cycling past the last year returns to all.
	s.Update(keyPress('y'))
	s.Update(keyPress('y'))
	if len(s.visible) != 3 {
		t.Errorf("after full cycle: %d visible, want 3", len(s.visible))
	}
}

func TestQuestionsScreen_SearchNarrows(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	s.Update(keyPress('/'))
	if !s.search.Active() {
		t.Fatal("expected search input to be active")
	}
	for _, r := range "bfs" {
		s.Update(keyPress(r))
	}
	if len(s.visible) != 1 || s.visible[0].QuestionID != "q-new" {
		t.Fatalf("search 'bfs' matched %v", s.visible)
	}

	// Esc clears the term and restores the full list.
	s.Update(specialKey(tea.KeyEscape))
	if s.search.Active() || len(s.visible) != 3 {
		t.Errorf("after esc: active=%v visible=%d, want inactive/3", s.search.Active(), len(s.visible))
	}
}

func TestQuestionsScreen_ToggleCompletedPersists(t *testing.T) {
	mem := kvstore.NewMemory()
	s := testScreen(mem)

	_, cmd := s.Update(keyPress(' '))
	if !s.completed["q-new"] {
		t.Fatal("expected cursor question to be marked done")
	}
	if cmd == nil {
		t.Fatal("expected a streak notification command")
	}
	msg := cmd()
	rec, ok := msg.(StreakChangedMsg)
	if !ok {
		t.Fatalf("cmd returned %T, want StreakChangedMsg", msg)
	}
	if rec.Record.Streak != 1 || rec.Record.TodayCount != 1 {
		t.Errorf("streak record = %+v, want streak 1, todayCount 1", rec.Record)
	}

	// A fresh screen over the same store sees the flag.
	again := testScreen(mem)
	if !again.completed["q-new"] {
		t.Error("completion did not survive a reload")
	}
}

func TestQuestionsScreen_ToggleOffDoesNotTouchStreak(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	s.Update(keyPress(' '))
	_, cmd := s.Update(keyPress(' '))
	if s.completed["q-new"] {
		t.Fatal("expected second toggle to unmark the question")
	}
	if cmd != nil {
		t.Error("unmarking must not emit a streak notification")
	}
}

func TestQuestionsScreen_WriteFailureShowsBanner(t *testing.T) {
	mem := kvstore.NewMemory()
	s := testScreen(mem)
	mem.FailWrites = true

	s.Update(keyPress(' '))
	if s.banner == "" {
		t.Fatal("expected an error banner")
	}
	if s.completed["q-new"] {
		t.Error("screen state must not change when the write fails")
	}

	// Any key dismisses the banner.
	s.Update(keyPress('x'))
	if s.banner != "" {
		t.Error("expected the banner to be dismissed")
	}
}

func TestQuestionsScreen_BookmarkToggle(t *testing.T) {
	mem := kvstore.NewMemory()
	s := testScreen(mem)

	s.Update(keyPress('b'))
	if !s.bookmarked["q-new"] {
		t.Fatal("expected cursor question to be bookmarked")
	}
	s.Update(keyPress('b'))
	if s.bookmarked["q-new"] {
		t.Error("expected second press to remove the bookmark")
	}
}

func TestQuestionsScreen_DetailOpenClose(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	s.Update(specialKey(tea.KeyEnter))
	if s.detail == nil {
		t.Fatal("expected enter to open the detail view")
	}
	if !s.WantsEsc() {
		t.Error("detail view must claim Esc")
	}

	s.Update(specialKey(tea.KeyEscape))
	if s.detail != nil {
		t.Error("expected esc to close the detail view")
	}
	if s.WantsEsc() {
		t.Error("closed screen must not claim Esc")
	}
}

func TestQuestionsScreen_CorrectMCQMarksDone(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	// Move to the MCQ row and open it.
	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))
	if s.detail == nil || s.detail.mc == nil {
		t.Fatal("expected an option picker for the MCQ")
	}

	// Pick the correct option (index 1) and submit.
	s.Update(keyPress('j'))
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if !s.detail.mc.Submitted || !s.detail.mc.IsCorrect() {
		t.Fatalf("submission state = %+v", s.detail.mc)
	}
	if cmd == nil {
		t.Fatal("expected a command after a correct submission")
	}
	if !s.completed["q-mcq"] {
		t.Error("a correct attempt must mark the question done")
	}
}

func TestQuestionsScreen_UnmarkedMCQStaysUnmarked(t *testing.T) {
	mem := kvstore.NewMemory()
	s := testScreen(mem)

	// Answer the MCQ correctly, then unmark it.
	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))
	s.Update(keyPress('j'))
	s.Update(specialKey(tea.KeyEnter))
	if !s.completed["q-mcq"] {
		t.Fatal("expected the correct attempt to mark the question done")
	}
	s.Update(keyPress(' '))
	if s.completed["q-mcq"] {
		t.Fatal("expected space to unmark the question")
	}
	before := streak.NewTracker(mem).Load(t.Context()).TodayCount

	// Keys routed to the answered picker must not re-mark it.
	_, cmd := s.Update(keyPress('j'))
	if s.completed["q-mcq"] {
		t.Error("a keypress after submission re-marked the question done")
	}
	if cmd != nil {
		t.Error("expected no command from a keypress after submission")
	}
	after := streak.NewTracker(mem).Load(t.Context()).TodayCount
	if after != before {
		t.Errorf("todayCount changed %d -> %d without a completion", before, after)
	}
}

func TestQuestionsScreen_ExplainWithoutProvider(t *testing.T) {
	s := testScreen(kvstore.NewMemory())

	s.Update(keyPress('e'))
	if s.banner == "" || !strings.Contains(s.banner, "unavailable") {
		t.Errorf("banner = %q, want an unavailability notice", s.banner)
	}
}

func TestQuestionsScreen_ViewRendersRows(t *testing.T) {
	var scr screen.Screen = testScreen(kvstore.NewMemory())
	view := scr.View(80, 24)
	if !strings.Contains(view, "Explain BFS traversal.") {
		t.Error("expected the question text in the list view")
	}
}
