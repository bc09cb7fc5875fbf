package catalog

import (
	"strings"
	"testing"
)

// testBranches builds a small two-branch tree used across the package
// tests.
func testBranches() []Branch {
	return []Branch{
		{
			ID: "it", Name: "Information Technology", Icon: "🖥",
			Semesters: []Semester{
				{
					ID: "it-s1", Number: 1,
					Subjects: []Subject{
						{
							ID: "it101", Name: "Programming Basics", Code: "IT101",
							Questions: []Question{
								{QuestionID: "it101-q1", Year: 2023, QNumber: "Q1", Chapter: "Module 1: Intro"},
								{QuestionID: "it101-q2", Year: 2022, QNumber: "Q2", Chapter: "Module 2: Loops"},
							},
						},
						{
							ID: "it102", Name: "Digital Logic", Code: "IT102",
							Questions: []Question{
								{QuestionID: "it102-q1", Year: 2023, QNumber: "Q1"},
							},
						},
					},
				},
				{
					ID: "it-s2", Number: 2,
					Subjects: []Subject{
						{
							ID: "it201", Name: "Databases", Code: "IT201",
							Questions: []Question{
								{QuestionID: "it201-q1", Year: 2021, QNumber: "Q1", Chapter: "Module 1: SQL"},
							},
						},
					},
				},
			},
		},
		{
			ID: "me", Name: "Mechanical", Icon: "⚙",
			Semesters: []Semester{
				{
					ID: "me-s1", Number: 1,
					Subjects: []Subject{
						{
							ID: "me101", Name: "Thermodynamics", Code: "ME101",
							Questions: []Question{
								{QuestionID: "me101-q1", Year: 2023, QNumber: "Q1"},
							},
						},
					},
				},
			},
		},
	}
}

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(testBranches())
	if err != nil {
		t.Fatalf("build catalog: %v", err)
	}
	return c
}

func TestNewRejectsDuplicateQuestionID(t *testing.T) {
	branches := testBranches()
	branches[1].Semesters[0].Subjects[0].Questions[0].QuestionID = "it101-q1"

	_, err := New(branches)
	if err == nil {
		t.Fatal("expected duplicate question id to be rejected")
	}
	if !strings.Contains(err.Error(), "it101-q1") {
		t.Errorf("error should name the duplicate id, got %v", err)
	}
}

func TestNewRejectsEmptyBranchID(t *testing.T) {
	branches := testBranches()
	branches[0].ID = "  "

	if _, err := New(branches); err == nil {
		t.Fatal("expected blank branch id to be rejected")
	}
}

func TestQuestionLookup(t *testing.T) {
	c := newTestCatalog(t)

	q, anc, ok := c.Question("it201-q1")
	if !ok {
		t.Fatal("expected question to resolve")
	}
	if q.Year != 2021 {
		t.Errorf("year = %d, want 2021", q.Year)
	}
	if anc.BranchID != "it" || anc.SemesterID != "it-s2" || anc.SubjectID != "it201" {
		t.Errorf("unexpected ancestry: %+v", anc)
	}
	if anc.SubjectName != "Databases" {
		t.Errorf("subject name = %q, want Databases", anc.SubjectName)
	}

	if _, _, ok := c.Question("nope"); ok {
		t.Error("unknown id should not resolve")
	}
}

func TestQuestionIDsSumAcrossLevels(t *testing.T) {
	c := newTestCatalog(t)

	b, _ := c.Branch("it")
	total := len(b.QuestionIDs())

	var bySemester int
	for i := range b.Semesters {
		bySemester += len(b.Semesters[i].QuestionIDs())
	}
	if total != bySemester {
		t.Errorf("branch total %d != sum of semester totals %d", total, bySemester)
	}

	var bySubject int
	for i := range b.Semesters {
		for j := range b.Semesters[i].Subjects {
			bySubject += len(b.Semesters[i].Subjects[j].QuestionIDs())
		}
	}
	if total != bySubject {
		t.Errorf("branch total %d != sum of subject totals %d", total, bySubject)
	}
}

func TestDefaultCatalogLoads(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("load embedded catalog: %v", err)
	}
	if c.QuestionCount() == 0 {
		t.Error("embedded catalog has no questions")
	}
	if len(c.Branches()) == 0 {
		t.Error("embedded catalog has no branches")
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	_, err := Load(strings.NewReader(`{"branches": [], "bogus": 1}`))
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
}

func TestLoadRejectsEmptyCatalog(t *testing.T) {
	_, err := Load(strings.NewReader(`{"branches": []}`))
	if err == nil {
		t.Fatal("expected empty catalog to be rejected")
	}
}
