package explain

import (
	"fmt"
	"strings"

	"github.com/abhisek/pyqdeck/internal/catalog"
)

const systemPrompt = `You are a study assistant helping engineering students prepare for university semester exams using previous-year question papers.

Rules:
- Explain how to approach and answer the given question, not just the final answer.
- Assume the student has attended the course but needs the concept refreshed.
- Keep the explanation focused on what the question actually asks. Do not pad with general subject background.
- Use plain prose with short paragraphs. Markdown headings are unnecessary; bold and inline code are fine.
- For multiple-choice questions, state the correct option and explain why each distractor is wrong.
- For numerical or derivation questions, show the working step by step.
- Scale depth to the marks: a 2-mark question gets a few sentences, a 10-mark question gets a full worked answer.`

// buildUserMessage constructs the user message from the question and
// its subject context.
func buildUserMessage(q catalog.Question, anc catalog.Ancestry) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Subject: %s (%s)\n", anc.SubjectName, anc.SubjectCode)
	fmt.Fprintf(&b, "Branch: %s, Semester %d\n", anc.BranchName, anc.SemesterNumber)

	if q.Chapter != "" {
		fmt.Fprintf(&b, "Chapter: %s\n", q.Chapter)
	}
	if q.Year > 0 {
		fmt.Fprintf(&b, "Exam year: %d\n", q.Year)
	}
	if q.Marks > 0 {
		fmt.Fprintf(&b, "Marks: %g\n", q.Marks)
	}

	b.WriteString("\nQuestion:\n")
	b.WriteString(q.Text)

	if len(q.Options) > 0 {
		b.WriteString("\n\nOptions:\n")
		for i, opt := range q.Options {
			fmt.Fprintf(&b, "%c. %s\n", 'A'+i, opt)
		}
	}

	return b.String()
}
