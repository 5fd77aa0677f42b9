package types

import "time"

// QuizQuestion is a single multiple-choice question. CorrectAnswer indexes
// into Options.
type QuizQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
	Explanation   string   `json:"explanation"`
}

type Quiz struct {
	ID        string         `json:"id"`
	Questions []QuizQuestion `json:"questions"`
	CreatedAt time.Time      `json:"created_at"`
}
