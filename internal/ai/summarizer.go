// Package ai provides text summarization backends.
package ai

import "context"

// Summarizer produces a short summary of free-form text.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}

// Mock is the disabled-AI fallback: it truncates instead of summarizing.
type Mock struct{}

// NewMock constructs the fallback summarizer.
func NewMock() *Mock { return &Mock{} }

const mockCutoff = 120

// Summarize returns the leading part of the text with an ellipsis.
func (m *Mock) Summarize(_ context.Context, text string) (string, error) {
	r := []rune(text)
	if len(r) <= mockCutoff {
		return text, nil
	}
	return string(r[:mockCutoff]) + "...", nil
}
