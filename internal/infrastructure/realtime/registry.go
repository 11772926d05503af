package realtime

import (
	"sync"

	"github.com/craftyard/marketplace-backend/internal/core/ports"
)

// Registry tracks at most one active document-store listener per
// subscription key. Subscribing again under the same key cancels the
// existing listener before installing the new one, so a re-subscribing
// caller never receives double deliveries.
type Registry struct {
	mu        sync.Mutex
	listeners map[string]ports.CancelListener
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{listeners: make(map[string]ports.CancelListener)}
}

// Set installs cancel as the active listener for key, cancelling any
// previous listener for that key first.
func (r *Registry) Set(key string, cancel ports.CancelListener) {
	r.mu.Lock()
	prev := r.listeners[key]
	r.listeners[key] = cancel
	r.mu.Unlock()
	if prev != nil {
		prev()
	}
}

// Cancel stops and removes the listener for key, if any.
func (r *Registry) Cancel(key string) {
	r.mu.Lock()
	cancel := r.listeners[key]
	delete(r.listeners, key)
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// CancelAll stops every listener. Used on teardown of the owning context.
func (r *Registry) CancelAll() {
	r.mu.Lock()
	cancels := make([]ports.CancelListener, 0, len(r.listeners))
	for _, c := range r.listeners {
		cancels = append(cancels, c)
	}
	r.listeners = make(map[string]ports.CancelListener)
	r.mu.Unlock()
	for _, c := range cancels {
		c()
	}
}

// Len reports the number of active listeners.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.listeners)
}
