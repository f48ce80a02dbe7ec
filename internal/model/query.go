package model

// Citation is a structured reference to the source document and estimated
// page backing part of an answer.
type Citation struct {
	Document     string       `json:"document"`
	Page         int          `json:"page"`
	DocumentType DocumentType `json:"document_type"`
	Confidence   float64      `json:"confidence"`
}

// QueryResult is the composed outcome of one question against a tenant's
// documents. Suggestions is empty unless HasKnowledgeGap is set.
type QueryResult struct {
	Answer          string     `json:"answer"`
	Citations       []Citation `json:"citations"`
	Confidence      float64    `json:"confidence"`
	HasKnowledgeGap bool       `json:"knowledge_gap"`
	Suggestions     []string   `json:"suggestions"`
}
