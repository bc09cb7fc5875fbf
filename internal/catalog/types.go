// Package catalog holds the static question bank: an immutable tree of
// branches, semesters, subjects and questions loaded once at startup.
package catalog

// Branch is a top-level stream of study (e.g. "Computer Science").
type Branch struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Icon      string     `json:"icon"`
	Semesters []Semester `json:"semesters"`
}

// Semester groups the subjects taught in one term of a branch.
type Semester struct {
	ID       string    `json:"id"`
	Number   int       `json:"number"`
	Subjects []Subject `json:"subjects"`
}

// Subject is a single course with its question bank. Modules are
// descriptive syllabus metadata; the chapter strings on questions are
// the source of truth for grouping.
type Subject struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Modules   []Module   `json:"modules,omitempty"`
	Questions []Question `json:"questions"`
}

// Module is a syllabus unit label within a subject.
type Module struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
}

// Question is one exam question. Year 0 means the year is unknown; a
// blank Chapter means the question is uncategorized.
type Question struct {
	QuestionID string   `json:"questionId"`
	Year       int      `json:"year,omitempty"`
	QNumber    string   `json:"qNumber"`
	Chapter    string   `json:"chapter,omitempty"`
	Text       string   `json:"text"`
	Type       string   `json:"type"`
	Marks      float64  `json:"marks,omitempty"`
	Options    []string `json:"options,omitempty"`

	// Answer is the 1-based index of the correct option for MCQs.
	// Zero means the paper's answer key is not recorded.
	Answer int `json:"answer,omitempty"`
}

// AnswerIndex returns the 0-based correct option index, or -1 when no
// answer key is recorded.
func (q Question) AnswerIndex() int {
	if q.Answer < 1 || q.Answer > len(q.Options) {
		return -1
	}
	return q.Answer - 1
}

// AllQuestions returns all questions under the branch, in catalog order.
func (b *Branch) AllQuestions() []Question {
	var out []Question
	for i := range b.Semesters {
		out = append(out, b.Semesters[i].AllQuestions()...)
	}
	return out
}

// AllQuestions returns all questions under the semester, in catalog order.
func (s *Semester) AllQuestions() []Question {
	var out []Question
	for i := range s.Subjects {
		out = append(out, s.Subjects[i].Questions...)
	}
	return out
}

// QuestionIDs returns the IDs of every question under the branch.
func (b *Branch) QuestionIDs() []string {
	return questionIDs(b.AllQuestions())
}

// QuestionIDs returns the IDs of every question under the semester.
func (s *Semester) QuestionIDs() []string {
	return questionIDs(s.AllQuestions())
}

// QuestionIDs returns the IDs of the subject's questions.
func (s *Subject) QuestionIDs() []string {
	return questionIDs(s.Questions)
}

func questionIDs(qs []Question) []string {
	ids := make([]string, len(qs))
	for i := range qs {
		ids[i] = qs[i].QuestionID
	}
	return ids
}
