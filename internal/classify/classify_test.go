package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"horo-rag/internal/model"
)

func TestClassifyFilenameKeywords(t *testing.T) {
	assert.Equal(t, model.DocTypePolicy, Classify("loan_policy.txt", ""))
	assert.Equal(t, model.DocTypePolicy, Classify("procedures-2024.txt", ""))
	assert.Equal(t, model.DocTypeHandbook, Classify("employee handbook.txt", ""))
	assert.Equal(t, model.DocTypeHandbook, Classify("user-guide.txt", ""))
	assert.Equal(t, model.DocTypeFinance, Classify("q3 budget.txt", ""))
	assert.Equal(t, model.DocTypeFinance, Classify("revenue report.txt", ""))
}

func TestClassifyContentKeywords(t *testing.T) {
	assert.Equal(t, model.DocTypePolicy, Classify("notes.txt", "our lending terms and credit limits"))
	assert.Equal(t, model.DocTypeHandbook, Classify("notes.txt", "how we onboard new hires"))
}

func TestClassifyFilenameWinsOverContent(t *testing.T) {
	// Filename says Handbook, content says Policy: filename rules run first.
	got := Classify("employee handbook.txt", "loan and credit rules for borrowers")
	assert.Equal(t, model.DocTypeHandbook, got)
}

func TestClassifyRuleOrderWithinFilenameGroup(t *testing.T) {
	// Matches both the Policy and Handbook filename groups; the Policy
	// group is declared first.
	assert.Equal(t, model.DocTypePolicy, Classify("policy handbook.txt", ""))
}

func TestClassifyDefault(t *testing.T) {
	assert.Equal(t, model.DocTypeDefault, Classify("notes.txt", "meeting minutes from tuesday"))
	assert.Equal(t, model.DocTypeDefault, Classify("", ""))
}

func TestClassifyCaseInsensitive(t *testing.T) {
	assert.Equal(t, model.DocTypePolicy, Classify("LOAN_POLICY.TXT", ""))
	assert.Equal(t, model.DocTypeHandbook, Classify("x.txt", "EMPLOYEE Onboarding"))
}

func TestClassifyDeterministic(t *testing.T) {
	first := Classify("finance.txt", "loan terms")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Classify("finance.txt", "loan terms"))
	}
}
