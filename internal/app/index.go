package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"horo-rag/internal/model"
	"horo-rag/internal/repository"
)

const (
	defaultChunkSize    = 512
	defaultChunkOverlap = 64
	defaultTopK         = 3
	defaultEmbedBatch   = 10 // many embedding APIs limit batch size
)

// EmbeddingClient converts text into fixed-length vectors. Implementations
// are expected to produce comparable vectors for identical text.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// IndexConfig tunes chunking and retrieval for the vector index.
type IndexConfig struct {
	ChunkSize      int
	ChunkOverlap   int
	EmbedBatchSize int
}

// VectorIndexManager maintains one brute-force cosine index per tenant,
// built incrementally as documents are ingested.
type VectorIndexManager struct {
	store    *repository.TenantStore
	embedder EmbeddingClient
	cfg      IndexConfig
}

func NewVectorIndexManager(store *repository.TenantStore, embedder EmbeddingClient, cfg IndexConfig) *VectorIndexManager {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.ChunkOverlap < 0 {
		cfg.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.EmbedBatchSize <= 0 {
		cfg.EmbedBatchSize = defaultEmbedBatch
	}
	return &VectorIndexManager{store: store, embedder: embedder, cfg: cfg}
}

// Ingest splits the text into overlapping chunks, embeds each one, and
// appends the result to the tenant's index. The document must already be in
// the tenant's store. Embedding happens before the partition is touched, so
// no lock is held across network calls. Returns the number of chunks added.
func (m *VectorIndexManager) Ingest(ctx context.Context, tenant, documentID, text string) (int, error) {
	texts := chunkText(text, m.cfg.ChunkSize, m.cfg.ChunkOverlap)
	if len(texts) == 0 {
		return 0, fmt.Errorf("%w: no text to index", ErrInvalidInput)
	}

	var embeddings [][]float32
	for i := 0; i < len(texts); i += m.cfg.EmbedBatchSize {
		end := i + m.cfg.EmbedBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batched, err := m.embedder.EmbedBatch(ctx, texts[i:end])
		if err != nil {
			return 0, fmt.Errorf("%w: embed chunks: %v", ErrUpstream, err)
		}
		embeddings = append(embeddings, batched...)
	}
	if len(embeddings) != len(texts) {
		return 0, fmt.Errorf("%w: embedding count mismatch", ErrUpstream)
	}

	chunks := make([]model.Chunk, len(texts))
	for i := range texts {
		chunks[i] = model.Chunk{
			DocumentID: documentID,
			Index:      i,
			Text:       texts[i],
			Embedding:  embeddings[i],
		}
	}
	if err := m.store.AppendChunks(tenant, chunks); err != nil {
		return 0, err
	}
	return len(chunks), nil
}

// Query embeds the question and returns the k most similar chunks from the
// tenant's index, ordered by descending score. A tenant with no ingested
// chunks yields an empty result, never an error — that outcome drives the
// knowledge-gap path downstream.
func (m *VectorIndexManager) Query(ctx context.Context, tenant, question string, k int) ([]model.RetrievedFragment, error) {
	if k <= 0 {
		k = defaultTopK
	}
	chunks := m.store.Chunks(tenant)
	if len(chunks) == 0 {
		return nil, nil
	}

	queryVec, err := m.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: embed question: %v", ErrUpstream, err)
	}

	fragments := make([]model.RetrievedFragment, len(chunks))
	for i := range chunks {
		fragments[i] = model.RetrievedFragment{
			Chunk: chunks[i],
			Score: similarityScore(queryVec, chunks[i].Embedding),
		}
	}
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].Score > fragments[j].Score
	})
	if k > len(fragments) {
		k = len(fragments)
	}
	return fragments[:k], nil
}

// chunkText splits text into overlapping chunks by rune count.
func chunkText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if size <= 0 {
		size = defaultChunkSize
	}
	if overlap >= size {
		overlap = size / 2
	}
	var chunks []string
	runes := []rune(text)
	for i := 0; i < len(runes); {
		end := i + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[i:end]))
		if end == len(runes) {
			break
		}
		i += size - overlap
	}
	return chunks
}

// similarityScore is cosine similarity clamped to [0,1]. Anti-correlated
// vectors score 0 rather than going negative, keeping fragment scores in
// the range citations expect.
func similarityScore(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA <= 0 || normB <= 0 {
		return 0
	}
	score := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}
