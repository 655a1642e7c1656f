// Package lexical implements the BM25 scoring engine. Corpus statistics are
// rebuilt wholesale on every Index call and published as an immutable
// snapshot behind an atomic pointer, so scoring never observes a partial
// rebuild and runs lock-free against whichever snapshot it loaded.
package lexical

import (
	"context"
	"math"
	"sort"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/result"
)

// Default BM25 constants.
const (
	DefaultK1 = 1.2
	DefaultB  = 0.75
)

// docStats holds per-document term statistics.
type docStats struct {
	length     int
	termCounts map[string]int
}

// corpusStats is an immutable statistics snapshot. Valid from one Index call
// to the next; concurrent scoring against a stale snapshot is acceptable.
type corpusStats struct {
	docs      map[string]docStats
	avgLength float64
	idf       map[string]float64
}

// Engine scores documents with BM25 over the most recent indexed corpus.
type Engine struct {
	k1     float64
	b      float64
	logger *zap.Logger
	stats  atomic.Pointer[corpusStats]
}

// New creates a BM25 engine. Non-positive constants fall back to the
// standard k1=1.2, b=0.75.
func New(k1, b float64, logger *zap.Logger) *Engine {
	if k1 <= 0 {
		k1 = DefaultK1
	}
	if b <= 0 {
		b = DefaultB
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{k1: k1, b: b, logger: logger}
}

// Index rebuilds corpus statistics from scratch for the given documents and
// atomically swaps the snapshot. The rebuild is deterministic: indexing the
// same set twice yields identical scores.
func (e *Engine) Index(docs []document.Document) {
	stats := &corpusStats{
		docs: make(map[string]docStats, len(docs)),
		idf:  make(map[string]float64),
	}

	df := make(map[string]int)
	totalLength := 0

	for i := range docs {
		tokens := tokenize(docs[i].SearchableText())
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
		}
		for term := range counts {
			df[term]++
		}
		stats.docs[docs[i].ID()] = docStats{length: len(tokens), termCounts: counts}
		totalLength += len(tokens)
	}

	n := len(stats.docs)
	if n > 0 {
		stats.avgLength = float64(totalLength) / float64(n)
	}

	// Lucene-style smoothed BM25 IDF. The +1 inside the log keeps the value
	// strictly positive, so a term appearing in most of the corpus still
	// contributes instead of cancelling out rarer query terms.
	for term, freq := range df {
		stats.idf[term] = math.Log(1 + (float64(n)-float64(freq)+0.5)/(float64(freq)+0.5))
	}

	e.stats.Store(stats)
	e.logger.Debug("bm25 index rebuilt",
		zap.Int("documents", n),
		zap.Int("terms", len(stats.idf)),
		zap.Float64("avg_length", stats.avgLength),
	)
}

// Clear discards the corpus statistics; subsequent scoring returns no results
// until the next Index call.
func (e *Engine) Clear() {
	e.stats.Store(nil)
}

// DocCount returns the number of documents in the current snapshot.
func (e *Engine) DocCount() int {
	stats := e.stats.Load()
	if stats == nil {
		return 0
	}
	return len(stats.docs)
}

// Score ranks the candidate documents against the query using the current
// statistics snapshot. Documents never indexed are skipped, documents with a
// total score <= 0 are excluded, and output is sorted descending by score.
// Before any Index call it returns an empty list. Cancellation is checked
// between per-document iterations.
func (e *Engine) Score(
	ctx context.Context, query string, docs []document.Document,
) ([]result.Lexical, error) {
	stats := e.stats.Load()
	if stats == nil || len(stats.docs) == 0 {
		return []result.Lexical{}, nil
	}

	terms := distinctTokens(query)
	if len(terms) == 0 {
		return []result.Lexical{}, nil
	}

	results := make([]result.Lexical, 0, len(docs))
	for i := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ds, ok := stats.docs[docs[i].ID()]
		if !ok {
			e.logger.Debug("document missing from bm25 index, skipping",
				zap.String("id", docs[i].ID()))
			continue
		}

		score := e.scoreDoc(stats, ds, terms)
		if score <= 0 {
			continue
		}
		results = append(results, result.NewLexical(docs[i].ID(), score))
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score() > results[j].Score()
	})
	return results, nil
}

// scoreDoc accumulates the BM25 contribution of each distinct query term.
func (e *Engine) scoreDoc(stats *corpusStats, ds docStats, terms []string) float64 {
	lengthNorm := 1.0
	if stats.avgLength > 0 {
		lengthNorm = 1 - e.b + e.b*(float64(ds.length)/stats.avgLength)
	}

	var score float64
	for _, term := range terms {
		idf, ok := stats.idf[term]
		if !ok {
			continue
		}
		tf := float64(ds.termCounts[term])
		if tf == 0 {
			continue
		}
		score += idf * (tf * (e.k1 + 1)) / (tf + e.k1*lengthNorm)
	}
	return score
}
