package catalog

import (
	"errors"
	"testing"
)

func TestLocateBranchOnly(t *testing.T) {
	c := newTestCatalog(t)

	res, err := c.Locate(Path{BranchID: "it"})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if res.Branch == nil || res.Branch.ID != "it" {
		t.Fatalf("expected branch it, got %+v", res.Branch)
	}
	if res.Semester != nil || res.Subject != nil {
		t.Error("semester/subject should be nil for a branch-only path")
	}
}

func TestLocateFullPath(t *testing.T) {
	c := newTestCatalog(t)

	res, err := c.Locate(Path{BranchID: "it", SemesterID: "it-s1", SubjectID: "it101"})
	if err != nil {
		t.Fatalf("locate: %v", err)
	}
	if res.Subject == nil || res.Subject.ID != "it101" {
		t.Fatalf("expected subject it101, got %+v", res.Subject)
	}
	if len(res.Questions) != 2 {
		t.Errorf("got %d questions, want 2", len(res.Questions))
	}
}

func TestLocateQuestionsAreACopy(t *testing.T) {
	c := newTestCatalog(t)

	res, _ := c.Locate(Path{BranchID: "it", SemesterID: "it-s1", SubjectID: "it101"})
	res.Questions[0].QNumber = "MUTATED"

	again, _ := c.Locate(Path{BranchID: "it", SemesterID: "it-s1", SubjectID: "it101"})
	if again.Questions[0].QNumber == "MUTATED" {
		t.Error("mutating a locate result leaked into the catalog")
	}
}

func TestLocateSemesterNotFoundKeepsBranch(t *testing.T) {
	c := newTestCatalog(t)

	res, err := c.Locate(Path{BranchID: "it", SemesterID: "does_not_exist"})

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Level != LevelSemester {
		t.Errorf("level = %q, want semester", nf.Level)
	}
	if res == nil || res.Branch == nil || res.Branch.ID != "it" {
		t.Error("resolved branch should still be exposed on semester miss")
	}
}

func TestLocateNotFoundLevels(t *testing.T) {
	c := newTestCatalog(t)

	tests := []struct {
		name string
		path Path
		want Level
	}{
		{"branch miss", Path{BranchID: "nope"}, LevelBranch},
		{"semester miss", Path{BranchID: "it", SemesterID: "nope"}, LevelSemester},
		{"subject miss", Path{BranchID: "it", SemesterID: "it-s1", SubjectID: "nope"}, LevelSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Locate(tt.path)
			var nf *NotFoundError
			if !errors.As(err, &nf) {
				t.Fatalf("expected NotFoundError, got %v", err)
			}
			if nf.Level != tt.want {
				t.Errorf("level = %q, want %q", nf.Level, tt.want)
			}
		})
	}
}

func TestLocateMissingBranchID(t *testing.T) {
	c := newTestCatalog(t)

	_, err := c.Locate(Path{})
	if !errors.Is(err, ErrMissingBranchID) {
		t.Fatalf("expected ErrMissingBranchID, got %v", err)
	}
}
