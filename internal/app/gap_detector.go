package app

import "strings"

// gapIndicators are phrases a model tends to produce when the retrieved
// context holds no answer. This is a substring heuristic on free-form LLM
// output, so it is best-effort in both directions: a model may phrase
// absence differently, or use one of these phrases in another sense.
var gapIndicators = []string{
	"don't have information",
	"not found",
	"no information",
	"unable to find",
}

type suggestionRule struct {
	keywords    []string
	suggestions []string
}

// suggestionRules map question intent to document types worth uploading.
// Evaluated in order against the question; the first matching group wins,
// mirroring the classifier's fixed-precedence rule table.
var suggestionRules = []suggestionRule{
	{
		keywords:    []string{"loan", "credit", "lending"},
		suggestions: []string{"Loan Policy Document", "Credit Guidelines", "Lending Procedures"},
	},
	{
		keywords:    []string{"onboard", "training", "employee"},
		suggestions: []string{"Employee Handbook", "Training Manual", "HR Policies"},
	},
	{
		keywords:    []string{"finance", "revenue", "cac", "budget"},
		suggestions: []string{"Financial Reports", "Budget Documents", "Growth Metrics"},
	},
	{
		keywords:    []string{"customer", "client", "acquisition"},
		suggestions: []string{"Customer Data", "Sales Reports", "Marketing Analytics"},
	},
}

var defaultSuggestions = []string{"Business Documents", "Policy Manual", "Operational Guidelines"}

// DetectGap reports whether the generated answer indicates missing
// information, plus document suggestions derived from the question.
func DetectGap(question, answer string) (bool, []string) {
	lower := strings.ToLower(answer)
	hasGap := false
	for _, indicator := range gapIndicators {
		if strings.Contains(lower, indicator) {
			hasGap = true
			break
		}
	}
	return hasGap, SuggestDocuments(question)
}

// SuggestDocuments returns the suggestion list for the first keyword group
// matching the question, or a generic default list.
func SuggestDocuments(question string) []string {
	lower := strings.ToLower(question)
	for _, r := range suggestionRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return append([]string(nil), r.suggestions...)
			}
		}
	}
	return append([]string(nil), defaultSuggestions...)
}
