package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"json code block", "```json\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"generic code block", "```\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"code block with language", "```javascript\n{\"key\": \"value\"}\n```", `{"key": "value"}`},
		{"plain JSON", `{"key": "value"}`, `{"key": "value"}`},
		{"array", "  [{\"name\": \"Two Sum\"}]  ", `[{"name": "Two Sum"}]`},
		{"preamble", "Here is the score:\n{\"result\": {\"score\": 7}}", `{"result": {"score": 7}}`},
		{"trailing prose", "{\"a\": 1}\nLet me know if you need more.", `{"a": 1}`},
		{"no json", "sorry, I cannot help", "sorry, I cannot help"},
		{"single line fence", "```{\"a\": 1}```", `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
