package document

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/quillsearch/hyra/internal/domain"
	domdoc "github.com/quillsearch/hyra/internal/domain/document"
)

type mockRepo struct {
	upsertFn  func(ctx context.Context, doc *domdoc.Document) (bool, error)
	getFn     func(ctx context.Context, id string) (domdoc.Document, error)
	listAllFn func(ctx context.Context) ([]domdoc.Document, error)
	deleteFn  func(ctx context.Context, id string) error
	countFn   func(ctx context.Context) (int, error)

	upserted []*domdoc.Document
}

func (m *mockRepo) Upsert(ctx context.Context, doc *domdoc.Document) (bool, error) {
	m.upserted = append(m.upserted, doc)
	if m.upsertFn != nil {
		return m.upsertFn(ctx, doc)
	}
	return true, nil
}

func (m *mockRepo) Get(ctx context.Context, id string) (domdoc.Document, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return domdoc.Document{}, domain.ErrDocumentNotFound
}

func (m *mockRepo) ListAll(ctx context.Context) ([]domdoc.Document, error) {
	if m.listAllFn != nil {
		return m.listAllFn(ctx)
	}
	return nil, nil
}

func (m *mockRepo) Delete(ctx context.Context, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func (m *mockRepo) Count(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	texts  []string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	m.texts = append(m.texts, text)
	return m.result, m.err
}

func newTestService(t *testing.T) (*Service, *mockRepo, *mockEmbedder) {
	t.Helper()
	repo := &mockRepo{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	return New(repo, emb, zap.NewNop()), repo, emb
}
