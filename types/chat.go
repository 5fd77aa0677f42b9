package types

import "time"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Source is a retrieval citation attached to an assistant message.
type Source struct {
	ChunkID    string  `json:"chunk_id,omitempty"`
	Page       int     `json:"page,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

// ChatMessage is one turn of a conversation. Transcripts are client-side and
// transient; only the session id survives across requests.
type ChatMessage struct {
	Role    string   `json:"role"`
	Content string   `json:"content"`
	Sources []Source `json:"sources,omitempty"`
}

// ChatSession is the backend's handle for a stored conversation. Messages are
// only populated when a single session is fetched.
type ChatSession struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	CreatedAt time.Time     `json:"created_at"`
	Messages  []ChatMessage `json:"messages,omitempty"`
}
