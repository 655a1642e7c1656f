package request

import (
	"fmt"

	"github.com/quillsearch/hyra/internal/domain/search/fusion"
	"github.com/quillsearch/hyra/internal/domain/search/mode"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Request is a validated search query. Empty queries are permitted and yield
// empty result lists downstream; they are not an error.
type Request struct {
	query      string
	searchMode mode.Mode
	strategy   fusion.Strategy
	limit      int
	minScore   float64
}

// New validates and normalizes search parameters.
// Defaults: mode=hybrid, limit=20. An empty strategy defers to the
// service-level fusion configuration.
func New(query string, m mode.Mode, strategy fusion.Strategy, limit int, minScore float64) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if m == "" {
		m = mode.Hybrid
	}
	if !m.IsValid() {
		return Request{}, fmt.Errorf("invalid search mode: %q", m)
	}
	if strategy != "" && !strategy.IsValid() {
		return Request{}, fmt.Errorf("invalid fusion strategy: %q", strategy)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Request{
		query:      query,
		searchMode: m,
		strategy:   strategy,
		limit:      limit,
		minScore:   minScore,
	}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }

// Mode returns the retrieval strategy.
func (r *Request) Mode() mode.Mode { return r.searchMode }

// Strategy returns the per-request fusion strategy override, empty for the
// configured default.
func (r *Request) Strategy() fusion.Strategy { return r.strategy }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// MinScore returns the minimum combined score threshold.
func (r *Request) MinScore() float64 { return r.minScore }
