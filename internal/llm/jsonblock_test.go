package llm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compresr/prompt-engine/internal/llm"
)

func TestExtractJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
		{"bare object", `{"a":1}`, `{"a":1}`},
		{"padded object", "\n  {\"a\":1}  \n", `{"a":1}`},
		{"prose prefix", `Sure! {"a":1}`, `{"a":1}`},
		{"code fence", "```json\n{\"a\":{\"b\":2}}\n```", `{"a":{"b":2}}`},
		{"prose both sides", "Here:\n{\"x\":\"}\"} hope that helps", "{\"x\":\"}\"}"},
		{"no braces", "I cannot do that.", "I cannot do that."},
		{"only open brace", "value { oops", "value { oops"},
		{"close before open", "} then {", "} then {"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, llm.ExtractJSONBlock(tt.in))
		})
	}
}
