package catalog

import (
	"fmt"
	"slices"
	"strings"
)

// Catalog is the immutable question bank with precomputed indices.
// Build one with New at startup and hand it to every consumer; nothing
// here mutates after construction.
type Catalog struct {
	branches     []Branch
	byBranch     map[string]*Branch
	questionByID map[string]*Question
	ancestryByID map[string]Ancestry
}

// Ancestry locates a question inside the tree, carrying the display
// names each level needs.
type Ancestry struct {
	BranchID       string
	BranchName     string
	SemesterID     string
	SemesterNumber int
	SubjectID      string
	SubjectName    string
	SubjectCode    string
}

// New builds a Catalog from hand-authored branches, validating the
// structural invariants the progress stores depend on (globally unique
// question IDs above all).
func New(branches []Branch) (*Catalog, error) {
	c := &Catalog{
		branches:     branches,
		byBranch:     make(map[string]*Branch, len(branches)),
		questionByID: make(map[string]*Question),
		ancestryByID: make(map[string]Ancestry),
	}

	for bi := range c.branches {
		b := &c.branches[bi]
		if strings.TrimSpace(b.ID) == "" {
			return nil, fmt.Errorf("branch %d: empty id", bi)
		}
		if _, dup := c.byBranch[b.ID]; dup {
			return nil, fmt.Errorf("duplicate branch id %q", b.ID)
		}
		c.byBranch[b.ID] = b

		semIDs := make(map[string]bool, len(b.Semesters))
		for si := range b.Semesters {
			sem := &b.Semesters[si]
			if semIDs[sem.ID] {
				return nil, fmt.Errorf("branch %q: duplicate semester id %q", b.ID, sem.ID)
			}
			semIDs[sem.ID] = true

			subIDs := make(map[string]bool, len(sem.Subjects))
			for ui := range sem.Subjects {
				sub := &sem.Subjects[ui]
				if subIDs[sub.ID] {
					return nil, fmt.Errorf("semester %q: duplicate subject id %q", sem.ID, sub.ID)
				}
				subIDs[sub.ID] = true

				for qi := range sub.Questions {
					q := &sub.Questions[qi]
					if strings.TrimSpace(q.QuestionID) == "" {
						return nil, fmt.Errorf("subject %q: question %d has empty questionId", sub.ID, qi)
					}
					if _, dup := c.questionByID[q.QuestionID]; dup {
						return nil, fmt.Errorf("duplicate question id %q", q.QuestionID)
					}
					c.questionByID[q.QuestionID] = q
					c.ancestryByID[q.QuestionID] = Ancestry{
						BranchID:       b.ID,
						BranchName:     b.Name,
						SemesterID:     sem.ID,
						SemesterNumber: sem.Number,
						SubjectID:      sub.ID,
						SubjectName:    sub.Name,
						SubjectCode:    sub.Code,
					}
				}
			}
		}
	}

	return c, nil
}

// Branches returns the branches in catalog order.
func (c *Catalog) Branches() []Branch {
	return slices.Clone(c.branches)
}

// Branch returns a branch by ID.
func (c *Catalog) Branch(id string) (*Branch, bool) {
	b, ok := c.byBranch[id]
	return b, ok
}

// Question returns a question and its ancestry by globally unique ID.
func (c *Catalog) Question(id string) (Question, Ancestry, bool) {
	q, ok := c.questionByID[id]
	if !ok {
		return Question{}, Ancestry{}, false
	}
	return *q, c.ancestryByID[id], true
}

// QuestionCount returns the total number of questions in the catalog.
func (c *Catalog) QuestionCount() int {
	return len(c.questionByID)
}

// AllQuestionIDs returns every question ID in catalog order.
func (c *Catalog) AllQuestionIDs() []string {
	var ids []string
	for i := range c.branches {
		ids = append(ids, c.branches[i].QuestionIDs()...)
	}
	return ids
}
