package chi

import (
	"time"

	domdoc "github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/fusion"
	"github.com/quillsearch/hyra/internal/domain/search/mode"
	"github.com/quillsearch/hyra/internal/domain/search/request"
	"github.com/quillsearch/hyra/internal/domain/search/result"
)

// errorCode classifies API errors for clients.
type errorCode string

const (
	codeBadRequest              errorCode = "bad_request"
	codeValidationFailed        errorCode = "validation_failed"
	codeDocumentNotFound        errorCode = "document_not_found"
	codeDimensionMismatch       errorCode = "dimension_mismatch"
	codeEmbeddingProviderError  errorCode = "embedding_provider_error"
	codeGenerationProviderError errorCode = "generation_provider_error"
	codeInternalError           errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type upsertDocumentRequest struct {
	Title    string            `json:"title,omitempty"`
	Content  string            `json:"content"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type documentResponse struct {
	ID        string            `json:"id"`
	Title     string            `json:"title,omitempty"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	HasVector bool              `json:"has_vector"`
	CreatedAt time.Time         `json:"created_at"`
}

type documentListResponse struct {
	Items []documentResponse `json:"items"`
	Total int                `json:"total"`
}

type indexResponse struct {
	Documents int `json:"documents"`
	Embedded  int `json:"embedded"`
}

type searchRequest struct {
	Query    string  `json:"query"`
	Mode     string  `json:"mode,omitempty"`
	Strategy string  `json:"strategy,omitempty"`
	Limit    int     `json:"limit,omitempty"`
	MinScore float64 `json:"min_score,omitempty"`
}

// signalScores exposes a per-signal score pair: the raw engine score and
// its normalized form used for fusion. Absent when the document did not
// appear in that signal's ranking.
type signalScores struct {
	Raw        float64 `json:"raw"`
	Normalized float64 `json:"normalized"`
}

type searchResultItem struct {
	ID       string        `json:"id"`
	Score    float64       `json:"score"`
	BM25     *signalScores `json:"bm25,omitempty"`
	Semantic *signalScores `json:"semantic,omitempty"`
}

type searchResponse struct {
	Items    []searchResultItem `json:"items"`
	Total    int                `json:"total"`
	Mode     string             `json:"mode"`
	Strategy string             `json:"strategy"`
}

type healthResponse struct {
	Status      string            `json:"status"`
	Checks      map[string]string `json:"checks"`
	IndexedDocs int               `json:"indexed_docs"`
}

func documentToResponse(doc *domdoc.Document) documentResponse {
	return documentResponse{
		ID:        doc.ID(),
		Title:     doc.Title(),
		Content:   doc.Content(),
		Metadata:  doc.Metadata(),
		HasVector: doc.HasVector(),
		CreatedAt: doc.CreatedAt(),
	}
}

func searchRequestFromDTO(req searchRequest) (request.Request, error) {
	m := mode.Hybrid
	if req.Mode != "" {
		m = mode.Mode(req.Mode)
	}
	return request.New(req.Query, m, fusion.Strategy(req.Strategy), req.Limit, req.MinScore)
}

func searchResultToItem(r *result.Fused) searchResultItem {
	item := searchResultItem{
		ID:    r.ID(),
		Score: r.Score(),
	}
	if raw, ok := r.BM25(); ok {
		norm, _ := r.BM25Normalized()
		item.BM25 = &signalScores{Raw: raw, Normalized: norm}
	}
	if raw, ok := r.Semantic(); ok {
		norm, _ := r.SemanticNormalized()
		item.Semantic = &signalScores{Raw: raw, Normalized: norm}
	}
	return item
}
