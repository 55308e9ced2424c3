// Package llm adapts hosted language-model services behind a single
// provider interface with one-shot and chunk-streamed generation.
package llm

import (
	"context"
)

// StreamFunc receives one text chunk. Returning a non-nil error stops the
// stream; chunks already delivered stand.
type StreamFunc func(chunk string) error

// Provider is the interface for all LLM providers.
type Provider interface {
	// GenerateResponse performs a single blocking completion.
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// StreamResponse delivers the completion as ordered text chunks, each
	// forwarded to fn as soon as it arrives. The stream is restartable per
	// call, not resumable mid-stream.
	StreamResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}, fn StreamFunc) error
}

// optionString reads a string option with a fallback.
func optionString(options map[string]interface{}, key, fallback string) string {
	if options != nil {
		if val, ok := options[key].(string); ok && val != "" {
			return val
		}
	}
	return fallback
}
