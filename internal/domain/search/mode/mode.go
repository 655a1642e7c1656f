package mode

// Mode is the retrieval strategy.
type Mode string

// Search mode constants.
const (
	// Hybrid fuses lexical and semantic scoring.
	Hybrid Mode = "hybrid"
	// Lexical scores with BM25 only.
	Lexical Mode = "lexical"
	// Semantic scores with embedding similarity only.
	Semantic Mode = "semantic"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Hybrid || m == Lexical || m == Semantic
}
