package model

import "time"

// DocumentType is the closed set of labels the classifier can produce.
type DocumentType string

const (
	DocTypePolicy   DocumentType = "Policy"
	DocTypeHandbook DocumentType = "Handbook"
	DocTypeFinance  DocumentType = "Finance"
	DocTypeDefault  DocumentType = "Document"
)

// DocumentInfo describes one uploaded document. Immutable after creation;
// owned exclusively by its tenant's partition.
type DocumentInfo struct {
	ID         string       `json:"id"`
	Filename   string       `json:"filename"`
	Type       DocumentType `json:"document_type"`
	Pages      int          `json:"pages"`
	Size       int          `json:"size"`
	Status     string       `json:"status"`
	UploadedAt time.Time    `json:"uploaded_at"`
}
