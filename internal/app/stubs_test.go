package app

import (
	"context"
	"hash/fnv"
	"strings"

	"horo-rag/internal/ai"
)

// stubEmbedder maps each word to a bucket in a fixed-size vector, so texts
// sharing words get a higher cosine similarity. Deterministic by design.
type stubEmbedder struct {
	err   error
	calls int
}

func (e *stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	return wordVector(text), nil
}

func (e *stubEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.calls++
	if e.err != nil {
		return nil, e.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = wordVector(t)
	}
	return out, nil
}

func wordVector(text string) []float32 {
	vec := make([]float32, 64)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ".,!?:;\"'()$")
		if w == "" {
			continue
		}
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%64]++
	}
	return vec
}

type stubGenerator struct {
	answer string
	err    error
	calls  int
}

func (g *stubGenerator) Complete(_ context.Context, _ []ai.ChatMessage) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	return g.answer, nil
}
