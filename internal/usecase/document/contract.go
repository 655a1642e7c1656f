package document

import (
	"context"

	"github.com/quillsearch/hyra/internal/domain"
	domdoc "github.com/quillsearch/hyra/internal/domain/document"
)

// Repository defines the storage contract for documents.
type Repository interface {
	Upsert(ctx context.Context, doc *domdoc.Document) (created bool, err error)
	Get(ctx context.Context, id string) (domdoc.Document, error)
	ListAll(ctx context.Context) ([]domdoc.Document, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
