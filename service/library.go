package service

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/studycopilot/studycopilot-cli/types"
	"github.com/studycopilot/studycopilot-cli/utils"
	"go.uber.org/zap"
)

const documentsCacheKey = "documents"

// LibraryAPI is the slice of the API the library service needs.
type LibraryAPI interface {
	ListDocuments(ctx context.Context) ([]types.Document, error)
	GetDocument(ctx context.Context, id string) (*types.Document, error)
	DeleteDocument(ctx context.Context, id string) error
	UploadDocument(ctx context.Context, path string) (*types.Document, error)
}

// LibraryService fronts the global document library with a short-lived
// read-through cache, so one logical view load issues one list call. Every
// mutation invalidates and re-fetches.
type LibraryService struct {
	api   LibraryAPI
	cache *cache.Cache
	log   *zap.Logger
}

func NewLibraryService(api LibraryAPI, log *zap.Logger) *LibraryService {
	if log == nil {
		log = zap.NewNop()
	}
	// Cached library entries live for 30 seconds and expired ones are purged
	// every minute.
	return &LibraryService{
		api:   api,
		cache: cache.New(30*time.Second, time.Minute),
		log:   log,
	}
}

// Documents returns the library, from cache when fresh.
func (s *LibraryService) Documents(ctx context.Context) ([]types.Document, error) {
	if x, found := s.cache.Get(documentsCacheKey); found {
		return x.([]types.Document), nil
	}
	return s.Refresh(ctx)
}

// Refresh bypasses the cache and re-fetches the library.
func (s *LibraryService) Refresh(ctx context.Context) ([]types.Document, error) {
	docs, err := s.api.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch documents: %w", err)
	}
	s.cache.Set(documentsCacheKey, docs, cache.DefaultExpiration)
	return docs, nil
}

func (s *LibraryService) Get(ctx context.Context, id string) (*types.Document, error) {
	return s.api.GetDocument(ctx, id)
}

// Upload validates the file locally before any request is issued, then pushes
// it to the backend. The returned document starts in "processing" status.
func (s *LibraryService) Upload(ctx context.Context, path string) (*types.Document, error) {
	if err := utils.ValidateUpload(path); err != nil {
		return nil, err
	}
	doc, err := s.api.UploadDocument(ctx, path)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(documentsCacheKey)
	s.log.Info("document uploaded", zap.String("document_id", doc.ID), zap.String("title", doc.Title))
	return doc, nil
}

// Delete removes the document and returns the re-fetched library. Notebooks
// may still reference the deleted id; their views filter it out on load.
func (s *LibraryService) Delete(ctx context.Context, id string) ([]types.Document, error) {
	if err := s.api.DeleteDocument(ctx, id); err != nil {
		return nil, err
	}
	s.cache.Delete(documentsCacheKey)
	return s.Refresh(ctx)
}
