package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"horo-rag/internal/ai"
	"horo-rag/internal/model"
)

const noDocumentsAnswer = "I don't have any documents to search. Please upload your business documents first."

const answerSystemPrompt = "You are a helpful assistant. Answer the user's question based only on the following context. If the context does not contain enough information, say so. Do not make up facts."

// GenerationClient produces free-form answer text from chat messages. The
// output is untrusted and unstructured; gap detection runs on it as a
// heuristic, not a protocol.
type GenerationClient interface {
	Complete(ctx context.Context, messages []ai.ChatMessage) (string, error)
}

// QueryService composes retrieval, generation, citations, and gap detection
// into one request/response cycle.
type QueryService struct {
	retrieval *RetrievalService
	citations *CitationBuilder
	generator GenerationClient
}

func NewQueryService(retrieval *RetrievalService, citations *CitationBuilder, generator GenerationClient) *QueryService {
	return &QueryService{
		retrieval: retrieval,
		citations: citations,
		generator: generator,
	}
}

// Answer runs one question against the tenant's documents. Retrieval runs
// first; with nothing retrieved, generation is skipped and a canned
// no-information result is returned. Otherwise gap detection runs on the
// actual generated text — a model may still claim ignorance even when
// fragments were retrieved.
func (s *QueryService) Answer(ctx context.Context, tenant, question string) (*model.QueryResult, error) {
	tenant = strings.TrimSpace(tenant)
	if tenant == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("%w: question is empty", ErrInvalidInput)
	}

	fragments, err := s.retrieval.Retrieve(ctx, tenant, question)
	if err != nil {
		return nil, err
	}
	if len(fragments) == 0 {
		return &model.QueryResult{
			Answer:          noDocumentsAnswer,
			Citations:       []model.Citation{},
			Confidence:      0,
			HasKnowledgeGap: true,
			Suggestions:     SuggestDocuments(question),
		}, nil
	}

	answer, err := s.generate(ctx, question, fragments)
	if err != nil {
		return nil, fmt.Errorf("%w: generate answer: %v", ErrUpstream, err)
	}

	citations, err := s.citations.Build(tenant, fragments)
	if err != nil {
		log.Printf("build citations failed for tenant %s: %v", tenant, err)
		return nil, err
	}

	hasGap, suggestions := DetectGap(question, answer)
	if !hasGap {
		suggestions = []string{}
	}

	confidence := 0.3
	if len(citations) > 0 && utf8.RuneCountInString(answer) > 50 {
		confidence = 0.9
	}

	return &model.QueryResult{
		Answer:          answer,
		Citations:       citations,
		Confidence:      confidence,
		HasKnowledgeGap: hasGap,
		Suggestions:     suggestions,
	}, nil
}

func (s *QueryService) generate(ctx context.Context, question string, fragments []model.RetrievedFragment) (string, error) {
	var contextBlock strings.Builder
	for _, f := range fragments {
		contextBlock.WriteString("\n---\n")
		contextBlock.WriteString(f.Chunk.Text)
	}
	contextBlock.WriteString("\n---")

	messages := []ai.ChatMessage{
		{Role: "system", Content: answerSystemPrompt},
		{Role: "user", Content: "Context:" + contextBlock.String() + "\n\nQuestion: " + question + "\n\nAnswer:"},
	}
	answer, err := s.generator.Complete(ctx, messages)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}
