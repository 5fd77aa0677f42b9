package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studycopilot/studycopilot-cli/types"
)

type fakeNotebookAPI struct {
	notebook  *types.Notebook
	notebooks []types.Notebook
	library   []types.Document
	updates   [][]string
	updateErr error
	deleted   []string
}

func (f *fakeNotebookAPI) GetNotebook(ctx context.Context, id string) (*types.Notebook, error) {
	if f.notebook == nil {
		return nil, errors.New("notebook not found")
	}
	nb := *f.notebook
	nb.DocumentIDs = append([]string(nil), f.notebook.DocumentIDs...)
	return &nb, nil
}

func (f *fakeNotebookAPI) ListDocuments(ctx context.Context) ([]types.Document, error) {
	return f.library, nil
}

func (f *fakeNotebookAPI) UpdateNotebook(ctx context.Context, id string, documentIDs []string) (*types.Notebook, error) {
	f.updates = append(f.updates, append([]string(nil), documentIDs...))
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.notebook.DocumentIDs = append([]string(nil), documentIDs...)
	return f.notebook, nil
}

func (f *fakeNotebookAPI) CreateNotebook(ctx context.Context, title string, documentIDs []string) (*types.Notebook, error) {
	return &types.Notebook{ID: "nb-new", Title: title, DocumentIDs: documentIDs}, nil
}

func (f *fakeNotebookAPI) ListNotebooks(ctx context.Context) ([]types.Notebook, error) {
	return f.notebooks, nil
}

func (f *fakeNotebookAPI) DeleteNotebook(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func doc(id string) types.Document {
	return types.Document{ID: id, Title: "doc " + id, Status: types.DocumentStatusReady}
}

func newLoadedNotebook(t *testing.T, api *fakeNotebookAPI) *NotebookService {
	t.Helper()
	svc := NewNotebookService(api, nil)
	require.NoError(t, svc.Load(context.Background(), api.notebook.ID))
	return svc
}

func TestNotebookAttachedAndAvailablePartitionLibrary(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook: &types.Notebook{ID: "nb-1", Title: "physics", DocumentIDs: []string{"A", "B"}},
		library:  []types.Document{doc("A"), doc("B"), doc("C"), doc("D")},
	}
	svc := newLoadedNotebook(t, api)

	attached := svc.Attached()
	available := svc.AvailableToAdd()
	require.Len(t, attached, 2)
	require.Len(t, available, 2)

	seen := map[string]bool{}
	for _, d := range attached {
		seen[d.ID] = true
	}
	for _, d := range available {
		assert.False(t, seen[d.ID], "document %s in both partitions", d.ID)
		seen[d.ID] = true
	}
	assert.Len(t, seen, len(api.library))
}

func TestNotebookDanglingIDDropped(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook: &types.Notebook{ID: "nb-1", DocumentIDs: []string{"A", "B"}},
		library:  []types.Document{doc("A"), doc("C")},
	}
	svc := newLoadedNotebook(t, api)

	attached := svc.Attached()
	require.Len(t, attached, 1)
	assert.Equal(t, "A", attached[0].ID)
}

func TestNotebookAddDocuments(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook: &types.Notebook{ID: "nb-1", DocumentIDs: []string{"A", "B"}},
		library:  []types.Document{doc("A"), doc("B"), doc("C")},
	}
	svc := newLoadedNotebook(t, api)

	require.NoError(t, svc.AddDocuments(context.Background(), []string{"C"}))

	require.Len(t, api.updates, 1)
	assert.Equal(t, []string{"A", "B", "C"}, api.updates[0])

	attached := svc.Attached()
	require.Len(t, attached, 3)
	assert.Empty(t, svc.AvailableToAdd())
}

func TestNotebookAddDuplicateIsNoOpUnion(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook: &types.Notebook{ID: "nb-1", DocumentIDs: []string{"A", "B"}},
		library:  []types.Document{doc("A"), doc("B")},
	}
	svc := newLoadedNotebook(t, api)

	require.NoError(t, svc.AddDocuments(context.Background(), []string{"B", "A"}))
	require.Len(t, api.updates, 1)
	assert.Equal(t, []string{"A", "B"}, api.updates[0])
}

func TestNotebookAddDocumentsServerError(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook:  &types.Notebook{ID: "nb-1", DocumentIDs: []string{"A"}},
		library:   []types.Document{doc("A"), doc("B")},
		updateErr: errors.New("boom"),
	}
	svc := newLoadedNotebook(t, api)

	require.Error(t, svc.AddDocuments(context.Background(), []string{"B"}))
	// The local view still reflects the last server state.
	attached := svc.Attached()
	require.Len(t, attached, 1)
	assert.Equal(t, "A", attached[0].ID)
}

func TestNotebookAddDocumentsRequiresLoad(t *testing.T) {
	svc := NewNotebookService(&fakeNotebookAPI{}, nil)
	assert.ErrorIs(t, svc.AddDocuments(context.Background(), []string{"A"}), ErrNotebookNotLoaded)
	assert.Nil(t, svc.Attached())
	assert.Nil(t, svc.AvailableToAdd())
}

// Two adds against the same base each send their own full list; the server
// keeps whichever lands last. This pins the documented last-write-wins
// behavior of overlapping updates.
func TestNotebookOverlappingAddsLastWriteWins(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook: &types.Notebook{ID: "nb-1", DocumentIDs: []string{"A"}},
		library:  []types.Document{doc("A"), doc("B"), doc("C")},
	}
	first := newLoadedNotebook(t, api)
	second := NewNotebookService(api, nil)
	require.NoError(t, second.Load(context.Background(), "nb-1"))

	require.NoError(t, first.AddDocuments(context.Background(), []string{"B"}))
	// The second service still holds the stale base [A] and overwrites B.
	require.NoError(t, second.AddDocuments(context.Background(), []string{"C"}))

	require.Len(t, api.updates, 2)
	assert.Equal(t, []string{"A", "B"}, api.updates[0])
	assert.Equal(t, []string{"A", "C"}, api.updates[1])
	assert.Equal(t, []string{"A", "C"}, api.notebook.DocumentIDs)
}

func TestNotebookCreateRequiresTitle(t *testing.T) {
	svc := NewNotebookService(&fakeNotebookAPI{}, nil)
	_, err := svc.Create(context.Background(), "", nil)
	require.Error(t, err)

	nb, err := svc.Create(context.Background(), "chemistry", []string{"A"})
	require.NoError(t, err)
	assert.Equal(t, "chemistry", nb.Title)
}

func TestNotebookDeleteClearsCurrent(t *testing.T) {
	api := &fakeNotebookAPI{
		notebook: &types.Notebook{ID: "nb-1", DocumentIDs: []string{"A"}},
		library:  []types.Document{doc("A")},
	}
	svc := newLoadedNotebook(t, api)

	_, err := svc.Delete(context.Background(), "nb-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"nb-1"}, api.deleted)
	assert.Nil(t, svc.Notebook())
}

func TestAvailableToAddPure(t *testing.T) {
	all := []types.Document{doc("A"), doc("B"), doc("C")}

	assert.Len(t, AvailableToAdd(all, nil), 3)
	assert.Empty(t, AvailableToAdd(all, []string{"A", "B", "C"}))

	out := AvailableToAdd(all, []string{"B"})
	require.Len(t, out, 2)
	assert.Equal(t, "A", out[0].ID)
	assert.Equal(t, "C", out[1].ID)
}
