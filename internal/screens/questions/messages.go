package questions

import "github.com/abhisek/pyqdeck/internal/streak"

// explanationMsg carries the result of an async explanation request.
type explanationMsg struct {
	QuestionID string
	Markdown   string
	Err        error
}

// StreakChangedMsg notifies the root model that completing a question
// updated the streak, so the header can refresh.
type StreakChangedMsg struct {
	Record streak.Record
}
