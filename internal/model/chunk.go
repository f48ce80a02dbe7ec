package model

// Chunk is one embedded span of a document's text. Chunks are append-only;
// DocumentID always resolves in the same tenant's document partition.
type Chunk struct {
	DocumentID string
	Index      int
	Text       string
	Embedding  []float32
}

// RetrievedFragment pairs a chunk with its similarity score for one query.
// Scores are in [0,1]; produced per query, never stored.
type RetrievedFragment struct {
	Chunk Chunk
	Score float64
}
