package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanSentence(t *testing.T) {
	tests := map[string]string{
		"  時は巡る。\n":   "時は巡る。",
		"「時は巡る。」":      "時は巡る。",
		"\"Time flows.\"": "Time flows.",
		"“ quoted ”":      "quoted",
		"「unbalanced":    "「unbalanced",
		"\"\"":            "\"\"",
		"   ":             "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CleanSentence(in), "input %q", in)
	}
}
