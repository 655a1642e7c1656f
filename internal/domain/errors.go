package domain

import "errors"

var (
	// ErrDocumentNotFound signals a missing document.
	ErrDocumentNotFound = errors.New("document not found")
	// ErrAlreadyExists signals a duplicate document.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDimensionMismatch signals two vectors of different length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")
	// ErrInvalidRequest signals malformed search or ingest parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrGenerationProviderError signals a hypothetical-document generation failure.
	ErrGenerationProviderError = errors.New("generation provider error")
)
