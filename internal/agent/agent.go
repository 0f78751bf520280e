// Package agent implements the SAGE analytics agent: a Gemini model with
// function tools over the sales dataset, plus a deterministic fallback used
// when no API key is configured.
package agent

import "context"

// Answerer produces a textual answer for a natural-language question.
type Answerer interface {
	Answer(ctx context.Context, query string) (string, error)
	Name() string
}
