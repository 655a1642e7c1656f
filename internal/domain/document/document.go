package document

import (
	"fmt"
	"regexp"
	"time"

	"github.com/quillsearch/hyra/internal/domain"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// MaxContentSize is the maximum document body size in bytes.
const MaxContentSize = 163840 // 160KB

// Document is the document aggregate (immutable value object).
// The vector is attached by indexing and is the only field that mutates
// after construction.
type Document struct {
	id        string
	title     string
	content   string
	metadata  map[string]string
	vector    []float32
	createdAt time.Time
}

// New validates and creates a Document.
// ID: ^[a-zA-Z0-9_-]+$, 1-256 chars. Content: non-empty, max 160KB.
func New(id, title, content string, metadata map[string]string) (Document, error) {
	if id == "" {
		return Document{}, fmt.Errorf("%w: document ID is required", domain.ErrInvalidRequest)
	}
	if len(id) > 256 {
		return Document{}, fmt.Errorf("%w: document ID too long (max 256)", domain.ErrInvalidRequest)
	}
	if !idRegex.MatchString(id) {
		return Document{}, fmt.Errorf("%w: document ID must be alphanumeric with underscores and hyphens", domain.ErrInvalidRequest)
	}
	if content == "" {
		return Document{}, fmt.Errorf("%w: content is required", domain.ErrInvalidRequest)
	}
	if len(content) > MaxContentSize {
		return Document{}, fmt.Errorf("%w: content too large (max %d bytes)", domain.ErrInvalidRequest, MaxContentSize)
	}

	return Document{
		id:        id,
		title:     title,
		content:   content,
		metadata:  cloneStringMap(metadata),
		createdAt: time.Now().UTC(),
	}, nil
}

// Reconstruct creates a Document without validation (storage hydration).
func Reconstruct(
	id, title, content string, metadata map[string]string,
	vector []float32, createdAt time.Time,
) Document {
	return Document{
		id: id, title: title, content: content,
		metadata: metadata, vector: vector, createdAt: createdAt,
	}
}

// ID returns the document identifier.
func (d *Document) ID() string { return d.id }

// Title returns the document title.
func (d *Document) Title() string { return d.title }

// Content returns the document body text.
func (d *Document) Content() string { return d.content }

// Metadata returns the free-form metadata fields.
func (d *Document) Metadata() map[string]string { return d.metadata }

// Vector returns the embedding vector, nil before indexing.
func (d *Document) Vector() []float32 { return d.vector }

// CreatedAt returns the creation timestamp.
func (d *Document) CreatedAt() time.Time { return d.createdAt }

// HasVector reports whether an embedding has been attached.
func (d *Document) HasVector() bool { return len(d.vector) > 0 }

// SearchableText returns the text surface used for tokenization and embedding:
// title and body concatenated.
func (d *Document) SearchableText() string {
	if d.title == "" {
		return d.content
	}
	return d.title + "\n\n" + d.content
}

// WithVector returns a copy with the given vector attached.
func (d Document) WithVector(v []float32) Document {
	return Document{
		id: d.id, title: d.title, content: d.content,
		metadata: d.metadata, vector: v, createdAt: d.createdAt,
	}
}

func cloneStringMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
