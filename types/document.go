package types

import "time"

const (
	DocumentStatusProcessing = "processing"
	DocumentStatusReady      = "ready"
	DocumentStatusFailed     = "failed"
)

// Document is an uploaded PDF and its processing metadata. The backend owns
// every field; the client only ever reads them.
type Document struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	FilePath  string    `json:"file_path"`
	FileSize  int64     `json:"file_size"`
	PageCount *int      `json:"page_count,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Summary   string    `json:"summary,omitempty"`
}
