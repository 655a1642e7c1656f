package semantic

import (
	"context"

	"github.com/quillsearch/hyra/internal/domain"
)

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Generator produces a hypothetical answer document for a query (HyDE).
type Generator interface {
	GenerateHypothetical(ctx context.Context, query string) (string, error)
}
