package retrieval

import (
	"context"

	"github.com/quillsearch/hyra/internal/domain"
	"github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/result"
)

// Repository defines the document store contract for retrieval operations.
type Repository interface {
	ListAll(ctx context.Context) ([]document.Document, error)
	SetVector(ctx context.Context, id string, vector []float32) error
}

// LexicalScorer indexes and scores documents with BM25.
type LexicalScorer interface {
	Index(docs []document.Document)
	Score(ctx context.Context, query string, docs []document.Document) ([]result.Lexical, error)
	DocCount() int
}

// SemanticScorer scores documents by combined embedding similarity.
type SemanticScorer interface {
	Score(ctx context.Context, query string, docs []document.Document) ([]result.Semantic, error)
}

// Embedder vectorizes document text in batches during index backfill.
type Embedder interface {
	BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}
