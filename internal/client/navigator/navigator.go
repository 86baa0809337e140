// Package navigator abstracts the "go to this location" side effect that the
// session layer triggers on logout and on a rejected credential.
package navigator

import (
	"context"
	"sync"
)

const (
	LoginPath     = "/login"
	DashboardPath = "/dashboard"
)

// Navigator moves the user interface to location.
type Navigator interface {
	Navigate(ctx context.Context, location string)
}

// Func adapts a plain function to Navigator.
type Func func(ctx context.Context, location string)

func (f Func) Navigate(ctx context.Context, location string) { f(ctx, location) }

// Recorder remembers where the application was sent. The terminal front end
// uses it as its current route; tests use it to assert redirects.
type Recorder struct {
	mu      sync.Mutex
	current string
	history []string
	onMove  func(location string)
}

// NewRecorder returns a Recorder starting at start. onMove, if not nil, is
// called after every navigation.
func NewRecorder(start string, onMove func(location string)) *Recorder {
	return &Recorder{current: start, onMove: onMove}
}

func (r *Recorder) Navigate(_ context.Context, location string) {
	r.mu.Lock()
	r.current = location
	r.history = append(r.history, location)
	cb := r.onMove
	r.mu.Unlock()

	if cb != nil {
		cb(location)
	}
}

// Location returns the last location navigated to.
func (r *Recorder) Location() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns every navigation in order.
func (r *Recorder) History() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.history))
	copy(out, r.history)
	return out
}
