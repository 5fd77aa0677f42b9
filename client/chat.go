package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/studycopilot/studycopilot-cli/types"
)

// ChatQuery sends one user message against the given documents. Passing the
// session id from a previous response keeps the conversation threaded
// server-side; leaving it empty starts a new session.
func (c *Client) ChatQuery(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	var resp types.ChatResponse
	if err := c.doJSON(ctx, http.MethodPost, "/chat/query", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ListChatSessions(ctx context.Context) ([]types.ChatSession, error) {
	var sessions []types.ChatSession
	if err := c.doJSON(ctx, http.MethodGet, "/chat/sessions", nil, &sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Client) GetChatSession(ctx context.Context, id string) (*types.ChatSession, error) {
	var session types.ChatSession
	if err := c.doJSON(ctx, http.MethodGet, "/chat/sessions/"+url.PathEscape(id), nil, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
