package types

import "time"

// Note is generated study material persisted by the backend.
type Note struct {
	ID          string    `json:"id"`
	Title       string    `json:"title,omitempty"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"created_at"`
	DocumentIDs []string  `json:"document_ids,omitempty"`
}

type Summary struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
