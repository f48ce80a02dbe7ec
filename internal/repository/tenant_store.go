package repository

import (
	"errors"
	"sync"

	"horo-rag/internal/model"
)

var ErrDocumentNotFound = errors.New("document not found")

// TenantStore partitions all in-memory state by tenant id. A partition owns
// the tenant's documents and chunk index; it is created lazily on first
// access and lives for the process lifetime. No code path ever reads or
// writes another tenant's partition.
type TenantStore struct {
	mu         sync.RWMutex
	partitions map[string]*partition
}

// partition guards one tenant's state. Writers (uploads) take the write
// lock; list and search take read snapshots so concurrent requests from the
// same tenant never observe a half-built index.
type partition struct {
	mu     sync.RWMutex
	docs   []model.DocumentInfo
	byID   map[string]int
	chunks []model.Chunk
}

func NewTenantStore() *TenantStore {
	return &TenantStore{partitions: make(map[string]*partition)}
}

func (s *TenantStore) partition(tenant string) *partition {
	s.mu.RLock()
	p, ok := s.partitions[tenant]
	s.mu.RUnlock()
	if ok {
		return p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.partitions[tenant]; ok {
		return p
	}
	p = &partition{byID: make(map[string]int)}
	s.partitions[tenant] = p
	return p
}

// AddDocument appends the document to the tenant's partition, preserving
// insertion order.
func (s *TenantStore) AddDocument(tenant string, doc model.DocumentInfo) {
	p := s.partition(tenant)
	p.mu.Lock()
	defer p.mu.Unlock()
	p.docs = append(p.docs, doc)
	p.byID[doc.ID] = len(p.docs) - 1
}

// ListDocuments returns the tenant's documents in insertion order. A tenant
// with no uploads yields an empty slice, never an error.
func (s *TenantStore) ListDocuments(tenant string) []model.DocumentInfo {
	p := s.partition(tenant)
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.DocumentInfo, len(p.docs))
	copy(out, p.docs)
	return out
}

// GetDocument looks up one document by id within the tenant's partition.
func (s *TenantStore) GetDocument(tenant, id string) (model.DocumentInfo, error) {
	p := s.partition(tenant)
	p.mu.RLock()
	defer p.mu.RUnlock()
	idx, ok := p.byID[id]
	if !ok {
		return model.DocumentInfo{}, ErrDocumentNotFound
	}
	return p.docs[idx], nil
}

// AppendChunks adds embedded chunks to the tenant's index. Every chunk must
// reference a document already present in the same partition; a chunk for an
// unknown document id is rejected to keep the index referentially intact.
func (s *TenantStore) AppendChunks(tenant string, chunks []model.Chunk) error {
	p := s.partition(tenant)
	p.mu.Lock()
	defer p.mu.Unlock()
	for i := range chunks {
		if _, ok := p.byID[chunks[i].DocumentID]; !ok {
			return ErrDocumentNotFound
		}
	}
	p.chunks = append(p.chunks, chunks...)
	return nil
}

// Chunks returns a snapshot of the tenant's chunk index. Chunks are
// immutable once appended, so a shallow copy is safe to read without the
// partition lock.
func (s *TenantStore) Chunks(tenant string) []model.Chunk {
	p := s.partition(tenant)
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]model.Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}
