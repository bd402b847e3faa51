// Package llm holds what the sentence generators share.
package llm

import (
	"errors"
	"strings"
)

// ErrEmptyResponse is returned when a service answered but produced no usable text.
var ErrEmptyResponse = errors.New("empty response from generative service")

var quotePairs = [][2]string{
	{"「", "」"},
	{"『", "』"},
	{"\"", "\""},
	{"“", "”"},
	{"'", "'"},
}

// CleanSentence trims whitespace and one level of wrapping quotes, which models like to add.
func CleanSentence(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range quotePairs {
		if len(s) > len(q[0])+len(q[1]) && strings.HasPrefix(s, q[0]) && strings.HasSuffix(s, q[1]) {
			s = strings.TrimSpace(s[len(q[0]) : len(s)-len(q[1])])
			break
		}
	}
	return s
}
