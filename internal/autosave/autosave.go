// Package autosave coalesces bursts of editor changes into single saves.
package autosave

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bep/debounce"

	"github.com/starford/ansuz/internal/blocks"
)

// DefaultInterval is the quiet period after the last change before a save
// fires.
const DefaultInterval = 2 * time.Second

// SaveFunc persists one settled document snapshot.
type SaveFunc func(ctx context.Context, snapshot []blocks.Block) error

// Saver debounces change notifications: rapid consecutive edits collapse into
// one save of the latest snapshot after a quiet period. Wire Notify as the
// editor's change callback.
type Saver struct {
	save      SaveFunc
	debounced func(func())

	mu     sync.Mutex
	latest []blocks.Block
	dirty  bool
	closed bool
}

// New creates a saver with the given quiet period. A non-positive interval
// falls back to DefaultInterval.
func New(interval time.Duration, save SaveFunc) *Saver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Saver{
		save:      save,
		debounced: debounce.New(interval),
	}
}

// Notify records a new document snapshot and (re)starts the quiet period.
func (s *Saver) Notify(snapshot []blocks.Block) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.latest = snapshot
	s.dirty = true
	s.mu.Unlock()

	s.debounced(s.fire)
}

// fire runs on the debounce timer goroutine once the quiet period elapses.
func (s *Saver) fire() {
	if err := s.Flush(); err != nil {
		slog.Error("autosave failed", "error", err)
	}
}

// Flush saves the pending snapshot immediately, if any. Safe to call at any
// time; a later debounce firing for an already-flushed snapshot is a no-op.
func (s *Saver) Flush() error {
	s.mu.Lock()
	if !s.dirty {
		s.mu.Unlock()
		return nil
	}
	snapshot := s.latest
	s.dirty = false
	s.mu.Unlock()

	return s.save(context.Background(), snapshot)
}

// Close flushes any pending snapshot and stops accepting notifications.
func (s *Saver) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.Flush()
}
