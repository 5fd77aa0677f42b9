package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycopilot/studycopilot-cli/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return New(server.URL, 5*time.Second, StaticToken("test-token"), nil)
}

func TestClientSetsAuthAndRequestID(t *testing.T) {
	var gotAuth, gotRequestID string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		json.NewEncoder(w).Encode([]types.Document{})
	})

	_, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestClientDecodesDocuments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/documents", r.URL.Path)
		json.NewEncoder(w).Encode([]types.Document{
			{ID: "doc-1", Title: "Calculus.pdf", Status: types.DocumentStatusReady, FileSize: 2048},
		})
	})

	docs, err := c.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "doc-1", docs[0].ID)
	assert.Equal(t, types.DocumentStatusReady, docs[0].Status)
}

func TestClientAPIErrorFromDetail(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Document not found"})
	})

	_, err := c.GetDocument(context.Background(), "nope")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Document not found", apiErr.Message)
	assert.NotEmpty(t, apiErr.RequestID)
	assert.Contains(t, apiErr.Error(), "404")
}

func TestClientAPIErrorNonJSONBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := c.ListNotebooks(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Empty(t, apiErr.Message)
}

func TestClientNotAuthenticatedSkipsRequest(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	defer server.Close()

	c := New(server.URL, 5*time.Second, StaticToken(""), nil)
	_, err := c.ListDocuments(context.Background())
	require.ErrorIs(t, err, ErrNotAuthenticated)
	assert.Zero(t, hits)
}

func TestClientTransportErrorIsNotAPIError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := c.ListDocuments(ctx)
	require.Error(t, err)

	var apiErr *APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientUpdateNotebookSendsFullList(t *testing.T) {
	var got types.UpdateNotebookRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/notebooks/nb-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(types.Notebook{ID: "nb-1", DocumentIDs: got.DocumentIDs})
	})

	nb, err := c.UpdateNotebook(context.Background(), "nb-1", []string{"A", "B", "C"})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got.DocumentIDs)
	assert.Equal(t, []string{"A", "B", "C"}, nb.DocumentIDs)
}

func TestClientUploadDocument(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/documents/upload", r.URL.Path)
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "notes.pdf", header.Filename)
		json.NewEncoder(w).Encode(types.Document{ID: "doc-1", Title: header.Filename, Status: types.DocumentStatusProcessing})
	})

	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 content"), 0600))

	doc, err := c.UploadDocument(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "doc-1", doc.ID)
	assert.Equal(t, types.DocumentStatusProcessing, doc.Status)
}

func TestClientUpdateTaskStatusPath(t *testing.T) {
	var gotPath, gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.UpdateTaskStatus(context.Background(), "plan-1", 2, "t3", true))
	assert.Equal(t, "/planner/plan-1/days/2/tasks/t3", gotPath)
	assert.Equal(t, "completed=true", gotQuery)
}

func TestClientChatQueryThreadsSession(t *testing.T) {
	var got types.ChatRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/query", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(types.ChatResponse{SessionID: "sess-9", Message: "hi"})
	})

	resp, err := c.ChatQuery(context.Background(), types.ChatRequest{
		DocumentIDs: []string{"doc-1"},
		Message:     "hello",
		SessionID:   "sess-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "sess-9", got.SessionID)
	assert.Equal(t, "sess-9", resp.SessionID)
}

func TestClientTrimsTrailingSlash(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode([]types.Notebook{})
	}))
	defer server.Close()

	c := New(server.URL+"/", 5*time.Second, StaticToken("t"), nil)
	_, err := c.ListNotebooks(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/notebooks", gotPath)
}
