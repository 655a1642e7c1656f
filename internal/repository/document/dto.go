package document

import (
	"encoding/json"
	"fmt"
	"time"

	domdoc "github.com/quillsearch/hyra/internal/domain/document"
)

// jsonDoc is the storage representation of a document.
type jsonDoc struct {
	Title     string            `json:"title,omitempty"`
	Content   string            `json:"content"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Vector    []float32         `json:"vector,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

// marshalDoc converts a domain Document into its JSON storage form.
func marshalDoc(doc *domdoc.Document) ([]byte, error) {
	data, err := json.Marshal(jsonDoc{
		Title:     doc.Title(),
		Content:   doc.Content(),
		Metadata:  doc.Metadata(),
		Vector:    doc.Vector(),
		CreatedAt: doc.CreatedAt(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return data, nil
}

// unmarshalDoc hydrates a domain Document from its JSON storage form.
// JSON.GET with a $ path returns a one-element array.
func unmarshalDoc(id string, raw []byte) (domdoc.Document, error) {
	var docs []jsonDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return domdoc.Document{}, fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	if len(docs) == 0 {
		return domdoc.Document{}, fmt.Errorf("empty document payload for %s", id)
	}
	d := docs[0]
	return domdoc.Reconstruct(id, d.Title, d.Content, d.Metadata, d.Vector, d.CreatedAt), nil
}
