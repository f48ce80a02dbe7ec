package app

import (
	"fmt"
	"unicode/utf8"

	"horo-rag/internal/model"
	"horo-rag/internal/repository"
)

const (
	// Confidence used when the retrieval backend supplied no score.
	// Deriving confidence from the score distribution instead is a tunable
	// policy, not a correctness requirement.
	fallbackConfidence = 0.8

	runesPerCitationPage = 500
)

// CitationBuilder derives citation records from retrieved fragments by
// joining them with document metadata from the tenant's store.
type CitationBuilder struct {
	store *repository.TenantStore
}

func NewCitationBuilder(store *repository.TenantStore) *CitationBuilder {
	return &CitationBuilder{store: store}
}

// Build converts fragments into citations, preserving input order. A
// fragment whose chunk references a document missing from the tenant's
// store violates index integrity and fails the whole build.
func (b *CitationBuilder) Build(tenant string, fragments []model.RetrievedFragment) ([]model.Citation, error) {
	citations := make([]model.Citation, 0, len(fragments))
	for _, f := range fragments {
		doc, err := b.store.GetDocument(tenant, f.Chunk.DocumentID)
		if err != nil {
			return nil, fmt.Errorf("%w: document %q", ErrChunkDocumentMissing, f.Chunk.DocumentID)
		}

		// Clamp the in-chunk page guess to the document's page count.
		page := utf8.RuneCountInString(f.Chunk.Text) / runesPerCitationPage
		if page < 1 {
			page = 1
		}
		if page > doc.Pages {
			page = doc.Pages
		}

		confidence := f.Score
		if confidence <= 0 {
			confidence = fallbackConfidence
		}

		citations = append(citations, model.Citation{
			Document:     doc.Filename,
			Page:         page,
			DocumentType: doc.Type,
			Confidence:   confidence,
		})
	}
	return citations, nil
}
