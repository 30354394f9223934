package schemas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compresr/prompt-engine/internal/schemas"
)

func TestParse_WorkerResponse(t *testing.T) {
	resp, err := schemas.Parse[schemas.WorkerResponse](`{
		"optimized_content": "x",
		"system_prompt": "S",
		"user_prompt": "U",
		"plan": "P",
		"unknown_field": 1
	}`)
	require.NoError(t, err)
	assert.Equal(t, "x", resp.OptimizedContent)
	assert.Equal(t, "S", resp.SystemPrompt)
	assert.Equal(t, "U", resp.UserPrompt)
	assert.Equal(t, "P", resp.Plan)
}

func TestParse_QualityReport(t *testing.T) {
	report, err := schemas.Parse[schemas.QualityReport](`{"score": 72, "summary": "ok", "issues": ["vague"]}`)
	require.NoError(t, err)
	assert.Equal(t, 72, report.Score)
	assert.Equal(t, []string{"vague"}, report.Issues)
}

func TestParse_QualityReportScoreOutOfRange(t *testing.T) {
	_, err := schemas.Parse[schemas.QualityReport](`{"score": 140}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Score")
}

func TestParse_FixResponseRequiresFixedText(t *testing.T) {
	_, err := schemas.Parse[schemas.LLMFixResponse](`{"explanation": "none"}`)
	require.Error(t, err)

	fix, err := schemas.Parse[schemas.LLMFixResponse](`{"fixed_text": "better", "changes": ["a", "b"]}`)
	require.NoError(t, err)
	assert.Equal(t, "better", fix.FixedText)
	assert.Len(t, fix.Changes, 2)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := schemas.Parse[schemas.WorkerResponse](`I cannot help with that`)
	require.Error(t, err)
}

func TestParse_TrailingDataRejected(t *testing.T) {
	for _, text := range []string{
		`{"fixed_text":"x"} and then {"note":1}`,
		`{"fixed_text":"x"} Replace {name}`,
		`{"fixed_text":"x"}{"fixed_text":"y"}`,
	} {
		_, err := schemas.Parse[schemas.LLMFixResponse](text)
		assert.Error(t, err, text)
	}
}

func TestParse_SurroundingWhitespaceAllowed(t *testing.T) {
	fix, err := schemas.Parse[schemas.LLMFixResponse]("\n {\"fixed_text\":\"x\"} \n")
	require.NoError(t, err)
	assert.Equal(t, "x", fix.FixedText)
}
