package sse

// Frame is one wire event of a streamed completion. Type is "text",
// "done" or "error"; the remaining fields are populated per type.
type Frame struct {
	Type          string `json:"type"`
	Content       string `json:"content,omitempty"`
	TokensEntrada int    `json:"tokens_entrada,omitempty"`
	TokensSaida   int    `json:"tokens_saida,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Text builds a content frame.
func Text(content string) Frame {
	return Frame{Type: "text", Content: content}
}

// Done builds the successful terminal frame with token accounting.
func Done(tokensEntrada, tokensSaida int) Frame {
	return Frame{Type: "done", TokensEntrada: tokensEntrada, TokensSaida: tokensSaida}
}

// Error builds the failure terminal frame. The message is shown to the
// end user, so callers pass a generic description, never upstream detail.
func Error(message string) Frame {
	return Frame{Type: "error", Message: message}
}
