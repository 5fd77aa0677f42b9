package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycopilot/studycopilot-cli/types"
)

type fakeLibraryAPI struct {
	docs      []types.Document
	listCalls int
	uploadErr error
}

func (f *fakeLibraryAPI) ListDocuments(ctx context.Context) ([]types.Document, error) {
	f.listCalls++
	return f.docs, nil
}

func (f *fakeLibraryAPI) GetDocument(ctx context.Context, id string) (*types.Document, error) {
	for i := range f.docs {
		if f.docs[i].ID == id {
			return &f.docs[i], nil
		}
	}
	return nil, errors.New("document not found")
}

func (f *fakeLibraryAPI) DeleteDocument(ctx context.Context, id string) error {
	out := f.docs[:0]
	for _, d := range f.docs {
		if d.ID != id {
			out = append(out, d)
		}
	}
	f.docs = out
	return nil
}

func (f *fakeLibraryAPI) UploadDocument(ctx context.Context, path string) (*types.Document, error) {
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	d := types.Document{ID: "doc-new", Title: filepath.Base(path), Status: types.DocumentStatusProcessing}
	f.docs = append(f.docs, d)
	return &d, nil
}

func tempPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}

func TestLibraryDocumentsCached(t *testing.T) {
	api := &fakeLibraryAPI{docs: []types.Document{doc("A")}}
	svc := NewLibraryService(api, nil)

	first, err := svc.Documents(context.Background())
	require.NoError(t, err)
	second, err := svc.Documents(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, api.listCalls)
}

func TestLibraryRefreshBypassesCache(t *testing.T) {
	api := &fakeLibraryAPI{docs: []types.Document{doc("A")}}
	svc := NewLibraryService(api, nil)

	_, err := svc.Documents(context.Background())
	require.NoError(t, err)
	_, err = svc.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, api.listCalls)
}

func TestLibraryUploadInvalidatesCache(t *testing.T) {
	api := &fakeLibraryAPI{docs: []types.Document{doc("A")}}
	svc := NewLibraryService(api, nil)

	_, err := svc.Documents(context.Background())
	require.NoError(t, err)

	uploaded, err := svc.Upload(context.Background(), tempPDF(t))
	require.NoError(t, err)
	assert.Equal(t, types.DocumentStatusProcessing, uploaded.Status)

	docs, err := svc.Documents(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
	assert.Equal(t, 2, api.listCalls)
}

func TestLibraryUploadRejectsBeforeRequest(t *testing.T) {
	api := &fakeLibraryAPI{}
	svc := NewLibraryService(api, nil)

	_, err := svc.Upload(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0600))
	_, err = svc.Upload(context.Background(), txt)
	require.Error(t, err)

	assert.Empty(t, api.docs)
}

func TestLibraryDeleteRefreshes(t *testing.T) {
	api := &fakeLibraryAPI{docs: []types.Document{doc("A"), doc("B")}}
	svc := NewLibraryService(api, nil)

	_, err := svc.Documents(context.Background())
	require.NoError(t, err)

	docs, err := svc.Delete(context.Background(), "A")
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "B", docs[0].ID)
}
