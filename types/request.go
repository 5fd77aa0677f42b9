package types

type ChatRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Message     string   `json:"message"`
	SessionID   string   `json:"session_id,omitempty"`
}

type ChatResponse struct {
	SessionID string   `json:"session_id"`
	Message   string   `json:"message"`
	Sources   []Source `json:"sources"`
}

type QuizRequest struct {
	DocumentIDs  []string `json:"document_ids"`
	NumQuestions int      `json:"num_questions"`
	Difficulty   string   `json:"difficulty"`
}

type NotesRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Topic       string   `json:"topic,omitempty"`
}

type SummaryRequest struct {
	DocumentIDs []string `json:"document_ids"`
	Length      string   `json:"length"`
}

type StudyPlanRequest struct {
	DocumentIDs []string `json:"document_ids"`
	ExamDate    string   `json:"exam_date"` // YYYY-MM-DD
	HoursPerDay int      `json:"hours_per_day"`
}

type CreateNotebookRequest struct {
	Title       string   `json:"title"`
	DocumentIDs []string `json:"document_ids"`
}

type UpdateNotebookRequest struct {
	Title       string   `json:"title,omitempty"`
	DocumentIDs []string `json:"document_ids"`
}
