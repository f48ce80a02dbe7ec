package app

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"horo-rag/internal/classify"
	"horo-rag/internal/model"
	"horo-rag/internal/repository"
)

const (
	minDocumentRunes = 50
	runesPerPage     = 2000

	statusReady = "ready"
)

// DocumentService handles document upload and listing for one tenant at a
// time: classify, store metadata, then ingest into the tenant's index.
type DocumentService struct {
	store *repository.TenantStore
	index *VectorIndexManager
}

func NewDocumentService(store *repository.TenantStore, index *VectorIndexManager) *DocumentService {
	return &DocumentService{store: store, index: index}
}

type UploadInput struct {
	Tenant   string
	Filename string
	Content  string
}

// Upload validates, classifies, and indexes one plain-text document, and
// returns its metadata. The document row is inserted before its chunks so
// the index never references an unknown document.
func (s *DocumentService) Upload(ctx context.Context, input UploadInput) (*model.DocumentInfo, error) {
	tenant := strings.TrimSpace(input.Tenant)
	if tenant == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	filename := strings.TrimSpace(input.Filename)
	if filename == "" {
		return nil, fmt.Errorf("%w: filename is required", ErrInvalidInput)
	}
	content := strings.TrimSpace(input.Content)
	if utf8.RuneCountInString(content) < minDocumentRunes {
		return nil, fmt.Errorf("%w: document too short or empty", ErrInvalidInput)
	}

	doc := model.DocumentInfo{
		ID:         documentID(tenant, filename),
		Filename:   filename,
		Type:       classify.Classify(filename, content),
		Pages:      estimatePages(content),
		Size:       len(content),
		Status:     statusReady,
		UploadedAt: time.Now(),
	}
	s.store.AddDocument(tenant, doc)

	if _, err := s.index.Ingest(ctx, tenant, doc.ID, content); err != nil {
		return nil, err
	}
	return &doc, nil
}

// List returns the tenant's documents in upload order.
func (s *DocumentService) List(tenant string) ([]model.DocumentInfo, error) {
	if strings.TrimSpace(tenant) == "" {
		return nil, fmt.Errorf("%w: tenant id is required", ErrInvalidInput)
	}
	return s.store.ListDocuments(tenant), nil
}

// Get returns one document by id within the tenant's partition.
func (s *DocumentService) Get(tenant, id string) (*model.DocumentInfo, error) {
	if strings.TrimSpace(tenant) == "" || strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("%w: tenant id and document id are required", ErrInvalidInput)
	}
	doc, err := s.store.GetDocument(tenant, id)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// documentID derives a stable short id from tenant and filename, so
// re-uploading the same file lands on the same id.
func documentID(tenant, filename string) string {
	sum := md5.Sum([]byte(tenant + "_" + filename))
	return hex.EncodeToString(sum[:])[:8]
}

// estimatePages is a coarse rune-count heuristic; true pagination is not
// available for plain text.
func estimatePages(content string) int {
	pages := utf8.RuneCountInString(content) / runesPerPage
	if pages < 1 {
		pages = 1
	}
	return pages
}
