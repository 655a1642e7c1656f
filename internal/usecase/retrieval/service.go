// Package retrieval orchestrates hybrid search: it fans the query out to the
// BM25 engine and the semantic scorer, waits for both, and fuses the two
// result lists into a single ranking.
package retrieval

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/fusion"
	"github.com/quillsearch/hyra/internal/domain/search/mode"
	"github.com/quillsearch/hyra/internal/domain/search/request"
	"github.com/quillsearch/hyra/internal/domain/search/result"
	"github.com/quillsearch/hyra/internal/metrics"
)

// IndexReport summarizes an index rebuild.
type IndexReport struct {
	Documents int
	Embedded  int
}

// Service coordinates indexing and hybrid search over the document store.
type Service struct {
	repo     Repository
	lexical  LexicalScorer
	semantic SemanticScorer
	embedder Embedder
	fusion   fusion.Options
	logger   *zap.Logger
}

// New creates a retrieval service.
func New(
	repo Repository,
	lexical LexicalScorer,
	semantic SemanticScorer,
	embedder Embedder,
	fusionOpts fusion.Options,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:     repo,
		lexical:  lexical,
		semantic: semantic,
		embedder: embedder,
		fusion:   fusionOpts,
		logger:   logger,
	}
}

// Index loads every document from the store, backfills missing embeddings in
// one batched call, and rebuilds the BM25 corpus statistics.
func (s *Service) Index(ctx context.Context) (IndexReport, error) {
	start := time.Now()

	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return IndexReport{}, fmt.Errorf("list documents: %w", err)
	}

	embedded, err := s.backfillVectors(ctx, docs)
	if err != nil {
		return IndexReport{}, err
	}

	s.lexical.Index(docs)

	metrics.IndexedDocuments.Set(float64(len(docs)))
	metrics.IndexDuration.Observe(time.Since(start).Seconds())
	s.logger.Info("index rebuilt",
		zap.Int("documents", len(docs)),
		zap.Int("embedded", embedded),
		zap.Duration("took", time.Since(start)),
	)

	return IndexReport{Documents: len(docs), Embedded: embedded}, nil
}

// backfillVectors embeds documents that lack a vector and persists the
// results. The docs slice is updated in place so scoring sees the vectors.
func (s *Service) backfillVectors(ctx context.Context, docs []document.Document) (int, error) {
	var missing []int
	var texts []string
	for i := range docs {
		if !docs[i].HasVector() {
			missing = append(missing, i)
			texts = append(texts, docs[i].SearchableText())
		}
	}
	if len(missing) == 0 {
		return 0, nil
	}

	res, err := s.embedder.BatchEmbed(ctx, texts)
	if err != nil {
		return 0, fmt.Errorf("embed %d documents: %w", len(missing), err)
	}
	if len(res.Embeddings) != len(missing) {
		return 0, fmt.Errorf("embed returned %d vectors for %d documents", len(res.Embeddings), len(missing))
	}

	for j, i := range missing {
		docs[i] = docs[i].WithVector(res.Embeddings[j])
		if err := s.repo.SetVector(ctx, docs[i].ID(), res.Embeddings[j]); err != nil {
			return 0, fmt.Errorf("persist vector for %s: %w", docs[i].ID(), err)
		}
	}
	return len(missing), nil
}

// Search runs the requested retrieval mode over the full candidate set and
// returns the fused ranking. In hybrid mode a semantic collaborator failure
// degrades the query to lexical-only results instead of failing it.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Fused, error) {
	start := time.Now()

	docs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	opts := s.fusionOptions(req)

	var fused []result.Fused
	switch req.Mode() {
	case mode.Lexical:
		lexRes, err := s.lexical.Score(ctx, req.Query(), docs)
		if err != nil {
			return nil, fmt.Errorf("score bm25: %w", err)
		}
		fused = fusion.Fuse(lexRes, nil, opts)
	case mode.Semantic:
		semRes, err := s.semantic.Score(ctx, req.Query(), docs)
		if err != nil {
			return nil, fmt.Errorf("score semantic: %w", err)
		}
		fused = fusion.Fuse(nil, semRes, opts)
	default:
		fused, err = s.searchHybrid(ctx, req.Query(), docs, opts)
		if err != nil {
			return nil, err
		}
	}

	metrics.SearchesTotal.WithLabelValues(string(req.Mode()), string(opts.Strategy)).Inc()
	metrics.SearchDuration.WithLabelValues(string(req.Mode())).Observe(time.Since(start).Seconds())
	return fused, nil
}

// searchHybrid fans out the two sub-scorings, waits for both, and fuses.
// The two calls have no ordering dependency; partial results are never fused.
func (s *Service) searchHybrid(
	ctx context.Context, query string, docs []document.Document, opts fusion.Options,
) ([]result.Fused, error) {
	var lexRes []result.Lexical
	var semRes []result.Semantic
	var semErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		lexRes, err = s.lexical.Score(gctx, query, docs)
		if err != nil {
			return fmt.Errorf("score bm25: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		// Semantic collaborator failures degrade rather than abort;
		// the BM25 path is entirely independent.
		semRes, semErr = s.semantic.Score(gctx, query, docs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if semErr != nil {
		s.logger.Warn("semantic scoring failed, degrading to lexical-only results",
			zap.String("query", query), zap.Error(semErr))
		semRes = nil
	}

	return fusion.Fuse(lexRes, semRes, opts), nil
}

// DefaultStrategy returns the configured fusion strategy used when a request
// carries no override.
func (s *Service) DefaultStrategy() fusion.Strategy {
	return s.fusion.Strategy
}

// fusionOptions applies per-request overrides onto the configured defaults.
func (s *Service) fusionOptions(req *request.Request) fusion.Options {
	opts := s.fusion
	if req.Strategy() != "" {
		opts.Strategy = req.Strategy()
	}
	if req.MinScore() != 0 {
		opts.ScoreThreshold = req.MinScore()
	}
	if req.Limit() > 0 && (opts.MaxResults <= 0 || req.Limit() < opts.MaxResults) {
		opts.MaxResults = req.Limit()
	}
	return opts
}
