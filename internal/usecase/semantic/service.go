// Package semantic scores candidate documents by embedding similarity using
// HyDE: the query and a generated hypothetical answer document are both
// embedded, each compared against the document vector by cosine similarity,
// and the two measures combined with configured weights.
package semantic

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/quillsearch/hyra/internal/domain"
	"github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/result"
	"github.com/quillsearch/hyra/internal/domain/vectormath"
)

// Default similarity combination weights. They are not required to sum to 1.
const (
	DefaultTraditionalWeight = 0.3
	DefaultHydeWeight        = 0.7
)

// Config holds the combination weights and exclusion threshold.
type Config struct {
	TraditionalWeight   float64
	HydeWeight          float64
	SimilarityThreshold float64
}

// DefaultConfig returns the default combiner configuration.
func DefaultConfig() Config {
	return Config{
		TraditionalWeight:   DefaultTraditionalWeight,
		HydeWeight:          DefaultHydeWeight,
		SimilarityThreshold: 0,
	}
}

// Service computes combined semantic similarity scores.
type Service struct {
	embedder  Embedder
	generator Generator
	cfg       Config
	logger    *zap.Logger
}

// New creates a semantic scoring service. Zero weights fall back to the
// 0.3/0.7 defaults.
func New(embedder Embedder, generator Generator, cfg Config, logger *zap.Logger) *Service {
	if cfg.TraditionalWeight == 0 && cfg.HydeWeight == 0 {
		cfg.TraditionalWeight = DefaultTraditionalWeight
		cfg.HydeWeight = DefaultHydeWeight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{embedder: embedder, generator: generator, cfg: cfg, logger: logger}
}

// Score ranks the candidate documents semantically. Collaborator failures
// (generation, embedding) are propagated; documents lacking a precomputed
// vector are skipped with a warning, never failing the whole query.
func (s *Service) Score(
	ctx context.Context, query string, docs []document.Document,
) ([]result.Semantic, error) {
	if query == "" || len(docs) == 0 {
		return []result.Semantic{}, nil
	}

	hypothetical, err := s.generator.GenerateHypothetical(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("generate hypothetical: %w", err)
	}

	vectors, err := s.embedVectors(ctx, query, hypothetical)
	if err != nil {
		return nil, err
	}
	queryVec, hypoVec := vectors[0], vectors[1]

	results := make([]result.Semantic, 0, len(docs))
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		doc := &docs[i]
		if !doc.HasVector() {
			s.logger.Warn("document missing embedding, skipping from semantic scoring",
				zap.String("id", doc.ID()))
			continue
		}

		traditional, err := vectormath.Cosine(queryVec, doc.Vector())
		if err != nil {
			return nil, fmt.Errorf("query similarity for %s: %w", doc.ID(), err)
		}
		hyde, err := vectormath.Cosine(hypoVec, doc.Vector())
		if err != nil {
			return nil, fmt.Errorf("hypothetical similarity for %s: %w", doc.ID(), err)
		}

		combined := traditional*s.cfg.TraditionalWeight + hyde*s.cfg.HydeWeight
		if combined < s.cfg.SimilarityThreshold {
			continue
		}
		results = append(results, result.NewSemantic(doc.ID(), combined, traditional, hyde, hypothetical))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results, nil
}

// embedVectors embeds the query and the hypothetical document, batched into a
// single call when the embedder supports it.
func (s *Service) embedVectors(ctx context.Context, query, hypothetical string) ([][]float32, error) {
	texts := []string{query, hypothetical}

	if be, ok := s.embedder.(domain.BatchEmbedder); ok {
		res, err := be.BatchEmbed(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("batch embed query and hypothetical: %w", err)
		}
		if len(res.Embeddings) != 2 {
			return nil, fmt.Errorf("batch embed returned %d vectors, want 2: %w",
				len(res.Embeddings), domain.ErrEmbeddingProviderError)
		}
		return res.Embeddings, nil
	}

	res, err := domain.BatchFallback(ctx, s.embedder, texts)
	if err != nil {
		return nil, fmt.Errorf("embed query and hypothetical: %w", err)
	}
	return res.Embeddings, nil
}
