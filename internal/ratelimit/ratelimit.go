// Package ratelimit implements per-client admission control for the chat
// endpoint. The counter map lives in process memory only: limits are
// best-effort within a single process and silently weaken when the
// service is scaled horizontally.
package ratelimit

import (
	"net/http"
	"strings"
	"sync"
	"time"
)

// Limiter decides whether a request from the given client is admitted.
// The in-memory implementation below is the default; the interface keeps
// callers unchanged if the counter ever moves to a shared store.
type Limiter interface {
	Admit(clientID string) bool
}

type windowState struct {
	count     int
	resetTime time.Time
}

// FixedWindow is a fixed-window counter: the count resets at fixed
// intervals rather than sliding, so a client can burst up to 2x the cap
// across a window boundary.
//
// Entries are never evicted, so the map grows with the number of
// distinct clients seen over the process lifetime.
type FixedWindow struct {
	mu      sync.Mutex
	clients map[string]*windowState
	window  time.Duration
	max     int
	now     func() time.Time
}

func NewFixedWindow(window time.Duration, max int) *FixedWindow {
	return &FixedWindow{
		clients: make(map[string]*windowState),
		window:  window,
		max:     max,
		now:     time.Now,
	}
}

// Admit reports whether the client may proceed. Admitted requests count
// against the window; rejected requests do not.
func (l *FixedWindow) Admit(clientID string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	state, exists := l.clients[clientID]

	if !exists || now.After(state.resetTime) {
		l.clients[clientID] = &windowState{
			count:     1,
			resetTime: now.Add(l.window),
		}
		return true
	}

	if state.count >= l.max {
		return false
	}

	state.count++
	return true
}

// ClientID derives the rate-limit key from request headers, in priority
// order: X-Forwarded-For (first hop), X-Real-IP, Remote-Addr. The value
// is not authenticated; it only keys the counter.
func ClientID(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	if remoteAddr := r.Header.Get("Remote-Addr"); remoteAddr != "" {
		return remoteAddr
	}
	return "unknown"
}
