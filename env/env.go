// Package env implements the process-run-scoped key/value map handed to
// every Action. It is mutable while the caller builds a run and frozen
// (read-only) once the graph starts.
package env

import (
	"sync"

	"github.com/dagrs-dev/dagrs/content"
)

// EnvVar is a string-keyed map of Content. Callers populate it before
// Graph.Start; Graph wraps it so that every Action sees the same
// read-only view.
type EnvVar struct {
	mu     sync.RWMutex
	frozen bool
	vars   map[string]content.Content
}

// New returns an empty, writable EnvVar.
func New() *EnvVar {
	return &EnvVar{vars: make(map[string]content.Content)}
}

// Set stores v under key. It panics if called after Freeze, matching the
// "frozen thereafter" invariant — a programmer error, not a runtime
// condition Actions need to handle.
func (e *EnvVar) Set(key string, v content.Content) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.frozen {
		panic("env: Set called on a frozen EnvVar")
	}
	e.vars[key] = v
}

// Get returns the Content stored under key and whether it was present.
// Safe to call concurrently, frozen or not.
func (e *EnvVar) Get(key string) (content.Content, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.vars[key]
	return v, ok
}

// Freeze marks the EnvVar read-only. Graph.Start calls this before
// launching any node task.
func (e *EnvVar) Freeze() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frozen = true
}

// Keys returns a snapshot of the currently stored keys.
func (e *EnvVar) Keys() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	keys := make([]string, 0, len(e.vars))
	for k := range e.vars {
		keys = append(keys, k)
	}
	return keys
}
