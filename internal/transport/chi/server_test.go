package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/quillsearch/hyra/internal/domain"
	"github.com/quillsearch/hyra/internal/domain/search/result"
)

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, url, &buf)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(resp.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return v
}

func TestUpsertDocument_Created(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{
		Title:   "Intro",
		Content: "machine learning basics",
	})

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/api/v1/documents/d1" {
		t.Errorf("Location = %q", loc)
	}
	doc := decode[documentResponse](t, resp)
	if doc.ID != "d1" || !doc.HasVector {
		t.Errorf("doc = %+v, want id=d1 with vector", doc)
	}
}

func TestUpsertDocument_UpdateReturns200(t *testing.T) {
	env := newTestEnv(t)

	doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{Content: "first"})
	resp := doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{Content: "second"})

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
}

func TestUpsertDocument_InvalidID(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "PUT", env.server.URL+"/api/v1/documents/bad%20id", upsertDocumentRequest{Content: "x"})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	errResp := decode[errorResponse](t, resp)
	if errResp.Code != codeValidationFailed {
		t.Errorf("code = %s, want %s", errResp.Code, codeValidationFailed)
	}
}

func TestUpsertDocument_EmptyContent(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{})

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestGetDocument_NotFound(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "GET", env.server.URL+"/api/v1/documents/missing", nil)

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
	errResp := decode[errorResponse](t, resp)
	if errResp.Code != codeDocumentNotFound {
		t.Errorf("code = %s, want %s", errResp.Code, codeDocumentNotFound)
	}
}

func TestDeleteDocument(t *testing.T) {
	env := newTestEnv(t)
	doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{Content: "body"})

	resp := doJSON(t, "DELETE", env.server.URL+"/api/v1/documents/d1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, "GET", env.server.URL+"/api/v1/documents/d1", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", resp.StatusCode)
	}
}

func TestListDocuments(t *testing.T) {
	env := newTestEnv(t)
	doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{Content: "one"})
	doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d2", upsertDocumentRequest{Content: "two"})

	resp := doJSON(t, "GET", env.server.URL+"/api/v1/documents", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	list := decode[documentListResponse](t, resp)
	if list.Total != 2 || len(list.Items) != 2 {
		t.Errorf("list = %+v, want 2 items", list)
	}
}

func TestRebuildIndex(t *testing.T) {
	env := newTestEnv(t)
	doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{Content: "one"})

	resp := doJSON(t, "POST", env.server.URL+"/api/v1/index", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	report := decode[indexResponse](t, resp)
	if report.Documents != 1 {
		t.Errorf("documents = %d, want 1", report.Documents)
	}
	if env.lexical.count != 1 {
		t.Errorf("lexical index size = %d, want 1", env.lexical.count)
	}
}

func TestSearch(t *testing.T) {
	env := newTestEnv(t)
	env.lexical.results = []result.Lexical{result.NewLexical("d1", 2.0)}
	env.semantic.results = []result.Semantic{result.NewSemantic("d1", 0.9, 0.8, 0.95, "hypo")}

	resp := doJSON(t, "POST", env.server.URL+"/api/v1/search", searchRequest{Query: "machine learning"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	sr := decode[searchResponse](t, resp)
	if sr.Total != 1 || sr.Items[0].ID != "d1" {
		t.Fatalf("results = %+v, want d1", sr)
	}
	if sr.Mode != "hybrid" || sr.Strategy != "weighted_sum" {
		t.Errorf("mode/strategy = %s/%s, want hybrid/weighted_sum", sr.Mode, sr.Strategy)
	}
	if sr.Items[0].BM25 == nil || sr.Items[0].Semantic == nil {
		t.Errorf("expected both signals on %+v", sr.Items[0])
	}
}

func TestSearch_InvalidMode(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "POST", env.server.URL+"/api/v1/search", searchRequest{
		Query: "q", Mode: "psychic",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestSearch_SemanticFailureDegrades(t *testing.T) {
	env := newTestEnv(t)
	env.lexical.results = []result.Lexical{result.NewLexical("d1", 2.0)}
	env.semantic.err = errors.New("provider down")

	resp := doJSON(t, "POST", env.server.URL+"/api/v1/search", searchRequest{Query: "q"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200 (degraded)", resp.StatusCode)
	}
	sr := decode[searchResponse](t, resp)
	if sr.Total != 1 || sr.Items[0].Semantic != nil {
		t.Errorf("expected lexical-only results, got %+v", sr.Items)
	}
}

func TestSearch_EmbeddingProviderErrorIs502(t *testing.T) {
	env := newTestEnv(t)
	env.embedder.err = domain.ErrEmbeddingProviderError

	doJSON(t, "PUT", env.server.URL+"/api/v1/documents/d1", upsertDocumentRequest{Content: "body"})

	resp := doJSON(t, "POST", env.server.URL+"/api/v1/index", nil)
	if resp.StatusCode != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", resp.StatusCode)
	}
	errResp := decode[errorResponse](t, resp)
	if errResp.Code != codeEmbeddingProviderError {
		t.Errorf("code = %s, want %s", errResp.Code, codeEmbeddingProviderError)
	}
}

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t)

	resp := doJSON(t, "GET", env.server.URL+"/health", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	hr := decode[healthResponse](t, resp)
	if hr.Status != "ok" || hr.Checks["database"] != "ok" {
		t.Errorf("health = %+v, want ok", hr)
	}
}

func TestHealthCheck_DBDownIs503(t *testing.T) {
	env := newTestEnv(t)
	env.pinger.err = errors.New("conn refused")

	resp := doJSON(t, "GET", env.server.URL+"/health", nil)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", resp.StatusCode)
	}
}
