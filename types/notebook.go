package types

import "time"

// Notebook is a named workspace grouping a subset of the user's documents.
// DocumentIDs is semantically a set; ids that no longer resolve to a library
// document (e.g. after a delete) are tolerated and filtered on display.
type Notebook struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	DocumentIDs []string  `json:"document_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
