package semantic

import (
	"context"
	"testing"
	"time"

	"github.com/quillsearch/hyra/internal/domain"
	"github.com/quillsearch/hyra/internal/domain/document"
)

// mockEmbedder implements the consumer interface for tests. Texts are mapped
// to fixed vectors via the vectors table; unknown texts get the fallback.
type mockEmbedder struct {
	vectors  map[string][]float32
	fallback []float32
	embedFn  func(ctx context.Context, text string) (domain.EmbeddingResult, error)
	calls    int
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.embedFn != nil {
		return m.embedFn(ctx, text)
	}
	if v, ok := m.vectors[text]; ok {
		return domain.EmbeddingResult{Embedding: v}, nil
	}
	return domain.EmbeddingResult{Embedding: m.fallback}, nil
}

// mockBatchEmbedder adds native batch support on top of mockEmbedder.
type mockBatchEmbedder struct {
	mockEmbedder
	batchCalls int
	batchFn    func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
}

func (m *mockBatchEmbedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	m.batchCalls++
	if m.batchFn != nil {
		return m.batchFn(ctx, texts)
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		if v, ok := m.vectors[t]; ok {
			out[i] = v
		} else {
			out[i] = m.fallback
		}
	}
	return domain.BatchEmbeddingResult{Embeddings: out}, nil
}

// mockGenerator implements the generation collaborator.
type mockGenerator struct {
	text  string
	err   error
	calls int
}

func (m *mockGenerator) GenerateHypothetical(ctx context.Context, query string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.text, nil
}

func docWithVector(t *testing.T, id string, vec []float32) document.Document {
	t.Helper()
	return document.Reconstruct(id, "", "content-"+id, nil, vec, time.Now())
}
