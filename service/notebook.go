package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/studycopilot/studycopilot-cli/types"
	"go.uber.org/zap"
)

var ErrNotebookNotLoaded = errors.New("no notebook loaded")

// NotebookAPI is the slice of the API the notebook service needs.
type NotebookAPI interface {
	GetNotebook(ctx context.Context, id string) (*types.Notebook, error)
	ListDocuments(ctx context.Context) ([]types.Document, error)
	UpdateNotebook(ctx context.Context, id string, documentIDs []string) (*types.Notebook, error)
	CreateNotebook(ctx context.Context, title string, documentIDs []string) (*types.Notebook, error)
	ListNotebooks(ctx context.Context) ([]types.Notebook, error)
	DeleteNotebook(ctx context.Context, id string) error
}

// NotebookService keeps one open notebook's attached-document view consistent
// with the global library. Views are always re-derived from the last server
// state, never from optimistic local merges.
//
// Overlapping mutations against the same notebook are not coordinated: a
// second AddDocuments issued before the first reload completes computes its
// union from the stale base and the server applies last-write-wins.
type NotebookService struct {
	mu       sync.Mutex
	api      NotebookAPI
	log      *zap.Logger
	notebook *types.Notebook
	library  []types.Document
}

func NewNotebookService(api NotebookAPI, log *zap.Logger) *NotebookService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NotebookService{api: api, log: log}
}

// Load fetches the notebook and then the full document library. The attached
// view is derived only after both complete.
func (s *NotebookService) Load(ctx context.Context, id string) error {
	nb, err := s.api.GetNotebook(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load notebook: %w", err)
	}
	docs, err := s.api.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("failed to load document library: %w", err)
	}

	s.mu.Lock()
	s.notebook = nb
	s.library = docs
	s.mu.Unlock()

	s.log.Debug("notebook loaded",
		zap.String("notebook_id", nb.ID),
		zap.Int("document_ids", len(nb.DocumentIDs)),
		zap.Int("library", len(docs)),
	)
	return nil
}

func (s *NotebookService) Notebook() *types.Notebook {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notebook == nil {
		return nil
	}
	snapshot := *s.notebook
	snapshot.DocumentIDs = append([]string(nil), s.notebook.DocumentIDs...)
	return &snapshot
}

func (s *NotebookService) Library() []types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Document(nil), s.library...)
}

// Attached derives the notebook's documents from the library. Ids that no
// longer resolve (a document deleted while still referenced) are dropped
// silently instead of breaking the view.
func (s *NotebookService) Attached() []types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notebook == nil {
		return nil
	}
	return filterByID(s.library, s.notebook.DocumentIDs)
}

// AvailableToAdd lists library documents not yet attached. Recomputed on
// every call; both inputs change independently.
func (s *NotebookService) AvailableToAdd() []types.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notebook == nil {
		return nil
	}
	return AvailableToAdd(s.library, s.notebook.DocumentIDs)
}

// AddDocuments attaches documents by sending the deduplicated union of the
// current and new ids (the update endpoint replaces, not appends), then
// reloads so the displayed set comes from the authoritative server state.
func (s *NotebookService) AddDocuments(ctx context.Context, newIDs []string) error {
	s.mu.Lock()
	if s.notebook == nil {
		s.mu.Unlock()
		return ErrNotebookNotLoaded
	}
	id := s.notebook.ID
	updated := unionIDs(s.notebook.DocumentIDs, newIDs)
	s.mu.Unlock()

	if _, err := s.api.UpdateNotebook(ctx, id, updated); err != nil {
		return fmt.Errorf("failed to update notebook: %w", err)
	}
	return s.Load(ctx, id)
}

func (s *NotebookService) Create(ctx context.Context, title string, documentIDs []string) (*types.Notebook, error) {
	if title == "" {
		return nil, errors.New("notebook title is required")
	}
	return s.api.CreateNotebook(ctx, title, documentIDs)
}

func (s *NotebookService) List(ctx context.Context) ([]types.Notebook, error) {
	return s.api.ListNotebooks(ctx)
}

// Delete removes the notebook and re-fetches the notebook list, since stale
// listings may still reference it. Confirmation happens at the command layer.
func (s *NotebookService) Delete(ctx context.Context, id string) ([]types.Notebook, error) {
	if err := s.api.DeleteNotebook(ctx, id); err != nil {
		return nil, err
	}
	s.mu.Lock()
	if s.notebook != nil && s.notebook.ID == id {
		s.notebook = nil
	}
	s.mu.Unlock()
	return s.api.ListNotebooks(ctx)
}

// unionIDs merges two id lists preserving first-seen order and dropping
// duplicates by identity.
func unionIDs(existing, added []string) []string {
	seen := make(map[string]bool, len(existing)+len(added))
	out := make([]string, 0, len(existing)+len(added))
	for _, id := range existing {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	for _, id := range added {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func filterByID(docs []types.Document, ids []string) []types.Document {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]types.Document, 0, len(ids))
	for _, d := range docs {
		if want[d.ID] {
			out = append(out, d)
		}
	}
	return out
}

// AvailableToAdd returns the library documents whose ids are not in
// currentIDs. Together with the attached set it partitions the library.
func AvailableToAdd(all []types.Document, currentIDs []string) []types.Document {
	attached := make(map[string]bool, len(currentIDs))
	for _, id := range currentIDs {
		attached[id] = true
	}
	out := make([]types.Document, 0, len(all))
	for _, d := range all {
		if !attached[d.ID] {
			out = append(out, d)
		}
	}
	return out
}
