package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrMissingBranchID is returned for a Locate call with no branch ID.
// Unlike a NotFoundError this signals caller misuse, not absent data.
var ErrMissingBranchID = errors.New("locate: branch id is required")

// Level identifies which tier of the tree a lookup failed at.
type Level string

const (
	LevelBranch   Level = "branch"
	LevelSemester Level = "semester"
	LevelSubject  Level = "subject"
)

// NotFoundError reports an ID that did not resolve at some level.
type NotFoundError struct {
	Level Level
	ID    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %q", e.Level, e.ID)
}

// Path addresses a node in the tree. SemesterID is only meaningful with
// a BranchID, and SubjectID only with a SemesterID.
type Path struct {
	BranchID   string
	SemesterID string
	SubjectID  string
}

// LocateResult holds the chain resolved so far. On a NotFoundError the
// levels above the failure are still populated, so callers can render
// the valid part of the path. Questions is a copy of the subject's
// question list; mutating it never touches the catalog.
type LocateResult struct {
	Branch    *Branch
	Semester  *Semester
	Subject   *Subject
	Questions []Question
}

// Locate walks the tree by exact ID match at each level given. It is a
// pure function of the catalog and never fails for absent IDs other
// than by returning a NotFoundError alongside the partial result.
func (c *Catalog) Locate(p Path) (*LocateResult, error) {
	if p.BranchID == "" {
		return nil, ErrMissingBranchID
	}

	res := &LocateResult{}

	b, ok := c.byBranch[p.BranchID]
	if !ok {
		return res, &NotFoundError{Level: LevelBranch, ID: p.BranchID}
	}
	res.Branch = b

	if p.SemesterID == "" {
		return res, nil
	}
	var sem *Semester
	for i := range b.Semesters {
		if b.Semesters[i].ID == p.SemesterID {
			sem = &b.Semesters[i]
			break
		}
	}
	if sem == nil {
		return res, &NotFoundError{Level: LevelSemester, ID: p.SemesterID}
	}
	res.Semester = sem

	if p.SubjectID == "" {
		return res, nil
	}
	var sub *Subject
	for i := range sem.Subjects {
		if sem.Subjects[i].ID == p.SubjectID {
			sub = &sem.Subjects[i]
			break
		}
	}
	if sub == nil {
		return res, &NotFoundError{Level: LevelSubject, ID: p.SubjectID}
	}
	res.Subject = sub
	res.Questions = slices.Clone(sub.Questions)

	return res, nil
}
