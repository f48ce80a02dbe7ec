package app

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrUpstream wraps embedding/generation failures. An infrastructure
	// failure is surfaced as retryable, never masked as a knowledge gap.
	ErrUpstream = errors.New("model backend unavailable")

	// ErrChunkDocumentMissing means a retrieved chunk references a document
	// absent from its tenant's partition. Never expected in normal
	// operation; logged as an internal fault.
	ErrChunkDocumentMissing = errors.New("chunk references missing document")
)
