package document

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	domdoc "github.com/quillsearch/hyra/internal/domain/document"
)

// Service handles document CRUD with automatic vectorization.
type Service struct {
	repo     Repository
	embedder Embedder
	logger   *zap.Logger
}

// New creates a document service.
func New(repo Repository, embedder Embedder, logger *zap.Logger) *Service {
	return &Service{
		repo:     repo,
		embedder: embedder,
		logger:   logger,
	}
}

// Upsert creates or updates a document with automatic vectorization, and
// returns the document as persisted plus whether it was created (as opposed
// to updated). An embedding failure does not block the write: the document
// is stored without a vector and picked up by the next index backfill.
func (s *Service) Upsert(ctx context.Context, doc *domdoc.Document) (domdoc.Document, bool, error) {
	stored := *doc

	result, err := s.embedder.Embed(ctx, doc.SearchableText())
	if err != nil {
		s.logger.Warn("Failed to vectorize document, storing without vector",
			zap.String("id", doc.ID()),
			zap.Error(err),
		)
	} else {
		stored = doc.WithVector(result.Embedding)
	}

	created, err := s.repo.Upsert(ctx, &stored)
	if err != nil {
		return domdoc.Document{}, false, fmt.Errorf("upsert document: %w", err)
	}
	return stored, created, nil
}

// Get retrieves a document by ID.
func (s *Service) Get(ctx context.Context, id string) (domdoc.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return domdoc.Document{}, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// List returns all stored documents.
func (s *Service) List(ctx context.Context) ([]domdoc.Document, error) {
	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}

// Delete removes a document.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

// Count returns the number of stored documents.
func (s *Service) Count(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}
