package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/studycopilot/studycopilot-cli/types"
)

func (c *Client) CreateNotebook(ctx context.Context, title string, documentIDs []string) (*types.Notebook, error) {
	if documentIDs == nil {
		documentIDs = []string{}
	}
	req := types.CreateNotebookRequest{Title: title, DocumentIDs: documentIDs}
	var nb types.Notebook
	if err := c.doJSON(ctx, http.MethodPost, "/notebooks", req, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

func (c *Client) ListNotebooks(ctx context.Context) ([]types.Notebook, error) {
	var nbs []types.Notebook
	if err := c.doJSON(ctx, http.MethodGet, "/notebooks", nil, &nbs); err != nil {
		return nil, err
	}
	return nbs, nil
}

func (c *Client) GetNotebook(ctx context.Context, id string) (*types.Notebook, error) {
	var nb types.Notebook
	if err := c.doJSON(ctx, http.MethodGet, "/notebooks/"+url.PathEscape(id), nil, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

// UpdateNotebook replaces the notebook's document id list wholesale; the
// backend has no append endpoint, so callers send the full updated set.
func (c *Client) UpdateNotebook(ctx context.Context, id string, documentIDs []string) (*types.Notebook, error) {
	req := types.UpdateNotebookRequest{DocumentIDs: documentIDs}
	var nb types.Notebook
	if err := c.doJSON(ctx, http.MethodPatch, "/notebooks/"+url.PathEscape(id), req, &nb); err != nil {
		return nil, err
	}
	return &nb, nil
}

func (c *Client) DeleteNotebook(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/notebooks/"+url.PathEscape(id), nil, nil)
}
