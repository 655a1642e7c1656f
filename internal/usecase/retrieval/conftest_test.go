package retrieval

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/quillsearch/hyra/internal/domain"
	"github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/fusion"
	"github.com/quillsearch/hyra/internal/domain/search/result"
)

type mockRepo struct {
	docs      []document.Document
	listErr   error
	setVecErr error
	vectors   map[string][]float32
}

func (m *mockRepo) ListAll(_ context.Context) ([]document.Document, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.docs, nil
}

func (m *mockRepo) SetVector(_ context.Context, id string, vector []float32) error {
	if m.setVecErr != nil {
		return m.setVecErr
	}
	if m.vectors == nil {
		m.vectors = make(map[string][]float32)
	}
	m.vectors[id] = vector
	return nil
}

type mockLexical struct {
	results []result.Lexical
	err     error
	indexed [][]document.Document
	scoreFn func(ctx context.Context, query string, docs []document.Document) ([]result.Lexical, error)
}

func (m *mockLexical) Index(docs []document.Document) {
	m.indexed = append(m.indexed, docs)
}

func (m *mockLexical) Score(
	ctx context.Context, query string, docs []document.Document,
) ([]result.Lexical, error) {
	if m.scoreFn != nil {
		return m.scoreFn(ctx, query, docs)
	}
	return m.results, m.err
}

func (m *mockLexical) DocCount() int {
	if len(m.indexed) == 0 {
		return 0
	}
	return len(m.indexed[len(m.indexed)-1])
}

type mockSemantic struct {
	results []result.Semantic
	err     error
	calls   int
}

func (m *mockSemantic) Score(
	_ context.Context, _ string, _ []document.Document,
) ([]result.Semantic, error) {
	m.calls++
	return m.results, m.err
}

type mockBatchEmbedder struct {
	batchFn func(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error)
	calls   int
	texts   []string
}

func (m *mockBatchEmbedder) BatchEmbed(
	ctx context.Context, texts []string,
) (domain.BatchEmbeddingResult, error) {
	m.calls++
	m.texts = append(m.texts, texts...)
	if m.batchFn != nil {
		return m.batchFn(ctx, texts)
	}
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings}, nil
}

func mustDoc(t *testing.T, id, content string) document.Document {
	t.Helper()
	doc, err := document.New(id, "", content, nil)
	if err != nil {
		t.Fatalf("New(%q): %v", id, err)
	}
	return doc
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockLexical, *mockSemantic, *mockBatchEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	lex := &mockLexical{}
	sem := &mockSemantic{}
	emb := &mockBatchEmbedder{}
	svc := New(repo, lex, sem, emb, fusion.DefaultOptions(), zap.NewNop())
	return svc, repo, lex, sem, emb
}
