package services

import (
	"context"
	"encoding/json"
)

// TokenUsage is the token accounting for one completion call.
type TokenUsage struct {
	InputTokens  int
	OutputTokens int
}

// Chunk is one element of a streaming completion. Exactly one terminal
// chunk is delivered: Usage set on success, Err set on mid-stream
// upstream failure. Text chunks carry neither.
type Chunk struct {
	Text  string
	Usage *TokenUsage
	Err   error
}

// IsTerminal reports whether this chunk ends the stream.
func (c Chunk) IsTerminal() bool {
	return c.Usage != nil || c.Err != nil
}

// Completer is the gateway to the external text-generation service.
// Implemented by internal/llm; services depend only on this interface.
type Completer interface {
	// StreamCompletion opens a single request and returns a finite,
	// non-restartable sequence of chunks as they arrive. Errors after
	// the stream is open surface as a terminal error chunk, never a
	// synchronous panic, so a partially-sent response can be closed
	// cleanly. Pre-flight failures (missing credentials) return an
	// error immediately instead.
	StreamCompletion(ctx context.Context, system, prompt string) (<-chan Chunk, error)

	// CompletionJSON issues one non-streaming request and extracts a
	// JSON object from the concatenated response text. Fails with
	// domain.ErrMalformedModelOutput when no parseable object is found.
	CompletionJSON(ctx context.Context, system, prompt string) (json.RawMessage, *TokenUsage, error)

	// Model returns the configured model identifier, for usage logging.
	Model() string
}
