// Package result holds the transient per-query result value objects produced
// by the lexical scorer, the semantic scorer, and the fusion engine. None of
// them is mutated after construction.
package result

// Lexical is a single BM25 hit.
type Lexical struct {
	id    string
	score float64
}

// NewLexical creates a lexical result.
func NewLexical(id string, score float64) Lexical {
	return Lexical{id: id, score: score}
}

// ID returns the document identifier.
func (r *Lexical) ID() string { return r.id }

// Score returns the raw BM25 score.
func (r *Lexical) Score() float64 { return r.score }

// Semantic is a single embedding-similarity hit.
type Semantic struct {
	id           string
	score        float64
	traditional  float64
	hyde         float64
	hypothetical string
}

// NewSemantic creates a semantic result. score is the weighted combination of
// the traditional and hypothetical-document similarities.
func NewSemantic(id string, score, traditional, hyde float64, hypothetical string) Semantic {
	return Semantic{
		id: id, score: score,
		traditional: traditional, hyde: hyde,
		hypothetical: hypothetical,
	}
}

// ID returns the document identifier.
func (r *Semantic) ID() string { return r.id }

// Score returns the combined semantic similarity.
func (r *Semantic) Score() float64 { return r.score }

// Traditional returns the query-to-document cosine component.
func (r *Semantic) Traditional() float64 { return r.traditional }

// Hyde returns the hypothetical-to-document cosine component.
func (r *Semantic) Hyde() float64 { return r.hyde }

// Hypothetical returns the generated hypothetical document text used.
func (r *Semantic) Hypothetical() string { return r.hypothetical }

// Fused is a single hit after rank fusion. Per-signal scores are retained for
// observability; a signal a document never appeared in reports ok=false.
type Fused struct {
	id           string
	score        float64
	bm25Raw      float64
	bm25Norm     float64
	inBM25       bool
	semanticRaw  float64
	semanticNorm float64
	inSemantic   bool
}

// NewFused creates a fused result for a document present in both signals.
func NewFused(id string, score float64) Fused {
	return Fused{id: id, score: score}
}

// WithBM25 returns a copy carrying the raw and normalized BM25 components.
func (r Fused) WithBM25(raw, norm float64) Fused {
	r.bm25Raw, r.bm25Norm, r.inBM25 = raw, norm, true
	return r
}

// WithSemantic returns a copy carrying the raw and normalized semantic components.
func (r Fused) WithSemantic(raw, norm float64) Fused {
	r.semanticRaw, r.semanticNorm, r.inSemantic = raw, norm, true
	return r
}

// WithScore returns a copy with the combined score replaced.
func (r Fused) WithScore(score float64) Fused {
	r.score = score
	return r
}

// ID returns the document identifier.
func (r *Fused) ID() string { return r.id }

// Score returns the combined fused score.
func (r *Fused) Score() float64 { return r.score }

// BM25 returns the raw BM25 score and whether the document appeared in the lexical list.
func (r *Fused) BM25() (float64, bool) { return r.bm25Raw, r.inBM25 }

// BM25Normalized returns the normalized BM25 score and presence flag.
func (r *Fused) BM25Normalized() (float64, bool) { return r.bm25Norm, r.inBM25 }

// Semantic returns the raw semantic score and whether the document appeared in the semantic list.
func (r *Fused) Semantic() (float64, bool) { return r.semanticRaw, r.inSemantic }

// SemanticNormalized returns the normalized semantic score and presence flag.
func (r *Fused) SemanticNormalized() (float64, bool) { return r.semanticNorm, r.inSemantic }
