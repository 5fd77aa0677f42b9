package client

import (
	"context"
	"net/http"

	"github.com/studycopilot/studycopilot-cli/types"
)

func (c *Client) GenerateNotes(ctx context.Context, req types.NotesRequest) (*types.Note, error) {
	var note types.Note
	if err := c.doJSON(ctx, http.MethodPost, "/notes/generate", req, &note); err != nil {
		return nil, err
	}
	return &note, nil
}

func (c *Client) ListNotes(ctx context.Context) ([]types.Note, error) {
	var notes []types.Note
	if err := c.doJSON(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) GenerateSummary(ctx context.Context, req types.SummaryRequest) (*types.Summary, error) {
	var summary types.Summary
	if err := c.doJSON(ctx, http.MethodPost, "/summary/generate", req, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
