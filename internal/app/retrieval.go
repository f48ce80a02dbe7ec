package app

import (
	"context"

	"horo-rag/internal/model"
)

// RetrievalService is the seam between query orchestration and the index
// implementation. Retrieval policy — k, the relevance floor, any future
// re-ranking — lives here so it can evolve without touching the index.
type RetrievalService struct {
	index    *VectorIndexManager
	topK     int
	minScore float64
}

// NewRetrievalService builds the retrieval seam. minScore 0 means no floor:
// the top-k fragments are returned regardless of absolute score, which keeps
// a tenant's only marginally-relevant document reachable.
func NewRetrievalService(index *VectorIndexManager, topK int, minScore float64) *RetrievalService {
	if topK <= 0 {
		topK = defaultTopK
	}
	return &RetrievalService{index: index, topK: topK, minScore: minScore}
}

// Retrieve returns the most relevant fragments for the question within the
// tenant's index, descending by score.
func (s *RetrievalService) Retrieve(ctx context.Context, tenant, question string) ([]model.RetrievedFragment, error) {
	fragments, err := s.index.Query(ctx, tenant, question, s.topK)
	if err != nil {
		return nil, err
	}
	if s.minScore <= 0 {
		return fragments, nil
	}
	kept := fragments[:0]
	for _, f := range fragments {
		if f.Score >= s.minScore {
			kept = append(kept, f)
		}
	}
	return kept, nil
}
