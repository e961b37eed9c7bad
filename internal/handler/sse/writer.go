package sse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrStreamingUnsupported is returned when the ResponseWriter cannot
// flush, which means SSE cannot work through it.
var ErrStreamingUnsupported = errors.New("response writer does not support streaming")

// Writer sends Server-Sent Events frames over an HTTP response.
// Every frame is flushed immediately; a write or flush error means the
// client is gone and all subsequent writes will fail the same way.
type Writer struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewWriter prepares the response for SSE and sends the headers.
// After this call the status code is committed, so failures must be
// delivered as in-band error frames, not HTTP errors.
func NewWriter(w http.ResponseWriter) (*Writer, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, ErrStreamingUnsupported
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	// Disable nginx buffering
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	return &Writer{w: w, flusher: flusher}, nil
}

// WriteEvent marshals v and sends it as one data frame.
func (s *Writer) WriteEvent(v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write event: %w", err)
	}
	s.flusher.Flush()

	return nil
}

// WriteKeepAlive writes an SSE comment (: keepalive) and flushes.
// Comments are ignored by clients; they exist to keep proxies from
// timing out an idle connection.
func (s *Writer) WriteKeepAlive() error {
	if _, err := fmt.Fprintf(s.w, ": keepalive\n\n"); err != nil {
		return fmt.Errorf("write keepalive: %w", err)
	}
	s.flusher.Flush()

	return nil
}
