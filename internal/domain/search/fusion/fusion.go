// Package fusion merges a lexical and a semantic result list into a single
// ranked list. Each strategy operates on the union of both input sets: a
// document present in only one list still appears, with the missing signal
// treated as absent rather than zero.
package fusion

import (
	"sort"

	"github.com/quillsearch/hyra/internal/domain/search/normalize"
	"github.com/quillsearch/hyra/internal/domain/search/result"
)

// DefaultRRFK is the standard RRF smoothing constant (Cormack et al. 2009).
const DefaultRRFK = 60.0

// Default signal weights.
const (
	DefaultBM25Weight     = 0.3
	DefaultSemanticWeight = 0.7
)

// Options configures a single fusion pass.
type Options struct {
	Strategy       Strategy
	Normalization  normalize.Strategy
	BM25Weight     float64
	SemanticWeight float64
	RRFK           float64
	ScoreThreshold float64
	MaxResults     int // <=0 means no truncation
}

// DefaultOptions returns the fusion defaults: weighted sum over min-max
// normalized scores, weights 0.3/0.7, k=60, no threshold, top 20.
func DefaultOptions() Options {
	return Options{
		Strategy:       WeightedSum,
		Normalization:  normalize.MinMax,
		BM25Weight:     DefaultBM25Weight,
		SemanticWeight: DefaultSemanticWeight,
		RRFK:           DefaultRRFK,
		ScoreThreshold: 0,
		MaxResults:     20,
	}
}

// entry accumulates per-document signal state during a fusion pass.
type entry struct {
	id       string
	combined float64

	bm25Raw  float64
	bm25Norm float64
	bm25Rank int // 1-based, 0 if absent

	semRaw  float64
	semNorm float64
	semRank int // 1-based, 0 if absent
}

// Fuse merges the two result lists using the strategy in opts. Inputs are
// expected in rank order (best first), as produced by the scorers. After
// combining, results below opts.ScoreThreshold are dropped, the rest is
// sorted descending by combined score (ties keep first-appearance order) and
// truncated to opts.MaxResults. An unknown strategy falls back to WeightedSum.
func Fuse(lexical []result.Lexical, semantic []result.Semantic, opts Options) []result.Fused {
	if len(lexical) == 0 && len(semantic) == 0 {
		return []result.Fused{}
	}
	if opts.RRFK <= 0 {
		opts.RRFK = DefaultRRFK
	}

	order := collect(lexical, semantic)
	normalizeSignals(order, opts.Normalization)

	strategy := opts.Strategy
	if !strategy.IsValid() {
		strategy = WeightedSum
	}

	switch strategy {
	case ReciprocalRankFusion:
		combineRRF(order, opts)
	case CombSum:
		combineSum(order)
	case CombMax:
		combineMax(order)
	case BordaCount:
		combineBorda(order, opts)
	default:
		combineWeighted(order, opts)
	}

	return finalize(order, opts)
}

// collect builds the union of both lists, keyed by document ID, preserving
// first-appearance order for deterministic tie handling.
func collect(lexical []result.Lexical, semantic []result.Semantic) []*entry {
	entries := make(map[string]*entry, len(lexical)+len(semantic))
	order := make([]*entry, 0, len(lexical)+len(semantic))

	for rank, r := range lexical {
		e := &entry{id: r.ID(), bm25Raw: r.Score(), bm25Rank: rank + 1}
		entries[r.ID()] = e
		order = append(order, e)
	}

	for rank, r := range semantic {
		e, ok := entries[r.ID()]
		if !ok {
			e = &entry{id: r.ID()}
			entries[r.ID()] = e
			order = append(order, e)
		}
		e.semRaw = r.Score()
		e.semRank = rank + 1
	}

	return order
}

// normalizeSignals rescales each signal's raw scores independently and writes
// the normalized values back onto the entries.
func normalizeSignals(order []*entry, strategy normalize.Strategy) {
	var bm25Entries, semEntries []*entry
	var bm25Scores, semScores []float64

	for _, e := range order {
		if e.bm25Rank > 0 {
			bm25Entries = append(bm25Entries, e)
			bm25Scores = append(bm25Scores, e.bm25Raw)
		}
		if e.semRank > 0 {
			semEntries = append(semEntries, e)
			semScores = append(semScores, e.semRaw)
		}
	}

	for i, s := range normalize.Apply(bm25Scores, strategy) {
		bm25Entries[i].bm25Norm = s
	}
	for i, s := range normalize.Apply(semScores, strategy) {
		semEntries[i].semNorm = s
	}
}

func combineWeighted(order []*entry, opts Options) {
	for _, e := range order {
		if e.bm25Rank > 0 {
			e.combined += e.bm25Norm * opts.BM25Weight
		}
		if e.semRank > 0 {
			e.combined += e.semNorm * opts.SemanticWeight
		}
	}
}

func combineRRF(order []*entry, opts Options) {
	for _, e := range order {
		if e.bm25Rank > 0 {
			e.combined += opts.BM25Weight / (opts.RRFK + float64(e.bm25Rank))
		}
		if e.semRank > 0 {
			e.combined += opts.SemanticWeight / (opts.RRFK + float64(e.semRank))
		}
	}
}

func combineSum(order []*entry) {
	for _, e := range order {
		if e.bm25Rank > 0 {
			e.combined += e.bm25Norm
		}
		if e.semRank > 0 {
			e.combined += e.semNorm
		}
	}
}

func combineMax(order []*entry) {
	for _, e := range order {
		switch {
		case e.bm25Rank > 0 && e.semRank > 0:
			e.combined = e.bm25Norm
			if e.semNorm > e.combined {
				e.combined = e.semNorm
			}
		case e.bm25Rank > 0:
			e.combined = e.bm25Norm
		default:
			e.combined = e.semNorm
		}
	}
}

// combineBorda awards points = unionSize - rank per signal, weighted.
func combineBorda(order []*entry, opts Options) {
	total := float64(len(order))
	for _, e := range order {
		if e.bm25Rank > 0 {
			e.combined += opts.BM25Weight * (total - float64(e.bm25Rank))
		}
		if e.semRank > 0 {
			e.combined += opts.SemanticWeight * (total - float64(e.semRank))
		}
	}
}

func finalize(order []*entry, opts Options) []result.Fused {
	kept := make([]*entry, 0, len(order))
	for _, e := range order {
		if e.combined < opts.ScoreThreshold {
			continue
		}
		kept = append(kept, e)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].combined > kept[j].combined
	})

	if opts.MaxResults > 0 && len(kept) > opts.MaxResults {
		kept = kept[:opts.MaxResults]
	}

	out := make([]result.Fused, 0, len(kept))
	for _, e := range kept {
		f := result.NewFused(e.id, e.combined)
		if e.bm25Rank > 0 {
			f = f.WithBM25(e.bm25Raw, e.bm25Norm)
		}
		if e.semRank > 0 {
			f = f.WithSemantic(e.semRaw, e.semNorm)
		}
		out = append(out, f)
	}
	return out
}
