// Package sse writes Server-Sent-Event frames in the `data: <json>\n\n`
// wire format, flushing each frame as it is produced.
package sse

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Writer emits SSE frames onto an HTTP response body. Each WriteEvent
// call produces exactly one frame and flushes it immediately; nothing is
// buffered across frames.
type Writer struct {
	w       io.Writer
	flusher http.Flusher
}

// NewWriter wraps w. When w also implements http.Flusher every frame is
// flushed to the client as soon as it is written.
func NewWriter(w io.Writer) *Writer {
	flusher, _ := w.(http.Flusher)
	return &Writer{w: w, flusher: flusher}
}

// SetHeaders configures the response headers for an SSE stream. Must be
// called before the first frame is written.
func SetHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
}

// WriteEvent marshals v and writes it as a single frame.
func (s *Writer) WriteEvent(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("write event: %w", err)
	}

	if s.flusher != nil {
		s.flusher.Flush()
	}
	return nil
}
