package chi

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/quillsearch/hyra/internal/domain"
	domdoc "github.com/quillsearch/hyra/internal/domain/document"
	"github.com/quillsearch/hyra/internal/domain/search/fusion"
	"github.com/quillsearch/hyra/internal/domain/search/result"
	documentuc "github.com/quillsearch/hyra/internal/usecase/document"
	healthuc "github.com/quillsearch/hyra/internal/usecase/health"
	retrievaluc "github.com/quillsearch/hyra/internal/usecase/retrieval"
)

// memRepo is an in-memory document store shared by the document and
// retrieval services in tests.
type memRepo struct {
	docs map[string]domdoc.Document
}

func newMemRepo() *memRepo {
	return &memRepo{docs: make(map[string]domdoc.Document)}
}

func (m *memRepo) Upsert(_ context.Context, doc *domdoc.Document) (bool, error) {
	_, existed := m.docs[doc.ID()]
	m.docs[doc.ID()] = *doc
	return !existed, nil
}

func (m *memRepo) Get(_ context.Context, id string) (domdoc.Document, error) {
	doc, ok := m.docs[id]
	if !ok {
		return domdoc.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (m *memRepo) ListAll(_ context.Context) ([]domdoc.Document, error) {
	out := make([]domdoc.Document, 0, len(m.docs))
	for _, d := range m.docs {
		out = append(out, d)
	}
	return out, nil
}

func (m *memRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return domain.ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}

func (m *memRepo) Count(_ context.Context) (int, error) {
	return len(m.docs), nil
}

func (m *memRepo) SetVector(_ context.Context, id string, vector []float32) error {
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrDocumentNotFound
	}
	m.docs[id] = doc.WithVector(vector)
	return nil
}

type stubEmbedder struct {
	err error
}

func (s *stubEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	if s.err != nil {
		return domain.EmbeddingResult{}, s.err
	}
	return domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}, TotalTokens: 2}, nil
}

func (s *stubEmbedder) BatchEmbed(_ context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	if s.err != nil {
		return domain.BatchEmbeddingResult{}, s.err
	}
	embeddings := make([][]float32, len(texts))
	for i := range texts {
		embeddings[i] = []float32{0.1, 0.2}
	}
	return domain.BatchEmbeddingResult{Embeddings: embeddings}, nil
}

type stubLexical struct {
	results []result.Lexical
	count   int
}

func (s *stubLexical) Index(docs []domdoc.Document) { s.count = len(docs) }

func (s *stubLexical) Score(_ context.Context, _ string, _ []domdoc.Document) ([]result.Lexical, error) {
	return s.results, nil
}

func (s *stubLexical) DocCount() int { return s.count }

type stubSemantic struct {
	results []result.Semantic
	err     error
}

func (s *stubSemantic) Score(_ context.Context, _ string, _ []domdoc.Document) ([]result.Semantic, error) {
	return s.results, s.err
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(_ context.Context) error { return s.err }

type testEnv struct {
	repo     *memRepo
	lexical  *stubLexical
	semantic *stubSemantic
	embedder *stubEmbedder
	pinger   *stubPinger
	server   *httptest.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		repo:     newMemRepo(),
		lexical:  &stubLexical{},
		semantic: &stubSemantic{},
		embedder: &stubEmbedder{},
		pinger:   &stubPinger{},
	}

	logger := zap.NewNop()
	documents := documentuc.New(env.repo, env.embedder, logger)
	retrieval := retrievaluc.New(
		env.repo, env.lexical, env.semantic, env.embedder,
		fusion.DefaultOptions(), logger,
	)
	health := healthuc.New(env.pinger, nil, env.lexical)

	srv := NewServer(documents, retrieval, health, logger)
	router := chi.NewRouter()
	srv.Routes(router)

	env.server = httptest.NewServer(router)
	t.Cleanup(env.server.Close)
	return env
}
