// Package classify assigns a document type from filename and content
// keywords. The rule table is ordered: filename rules run before content
// rules, so a filename hit always wins over a content hit, and within each
// group earlier rules take precedence. Classification is total — unmatched
// input falls through to the default type.
package classify

import (
	"strings"

	"horo-rag/internal/model"
)

type field int

const (
	byFilename field = iota
	byContent
)

type rule struct {
	field    field
	keywords []string
	result   model.DocumentType
}

var rules = []rule{
	{byFilename, []string{"policy", "procedure", "rule"}, model.DocTypePolicy},
	{byFilename, []string{"handbook", "manual", "guide"}, model.DocTypeHandbook},
	{byFilename, []string{"finance", "financial", "budget", "revenue"}, model.DocTypeFinance},
	{byContent, []string{"loan", "credit", "lending"}, model.DocTypePolicy},
	{byContent, []string{"onboard", "training", "employee"}, model.DocTypeHandbook},
}

// Classify returns the document type for the given filename and content.
// Matching is a case-insensitive substring test; the first matching rule wins.
func Classify(filename, content string) model.DocumentType {
	name := strings.ToLower(filename)
	body := strings.ToLower(content)

	for _, r := range rules {
		haystack := name
		if r.field == byContent {
			haystack = body
		}
		for _, kw := range r.keywords {
			if strings.Contains(haystack, kw) {
				return r.result
			}
		}
	}
	return model.DocTypeDefault
}
