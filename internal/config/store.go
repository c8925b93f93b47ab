package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/qdb-debug/qdb/internal/ctxlog"
	"github.com/qdb-debug/qdb/internal/launch"
)

// Store holds the stored launch configurations loaded at startup. Reads and
// the watcher's background reloads race, so access is guarded by a mutex;
// nothing else in the bootstrap mutates state across invocations.
type Store struct {
	loader Loader
	paths  []string

	mu       sync.RWMutex
	requests []launch.Request
}

// NewStore creates a Store over the given loader and source paths. Call
// Reload to populate it.
func NewStore(loader Loader, paths ...string) *Store {
	return &Store{loader: loader, paths: paths}
}

// Reload re-reads all source paths through the loader and replaces the
// cached configurations atomically. On error the previous cache is kept.
func (s *Store) Reload(ctx context.Context) error {
	requests, err := s.loader.Load(ctx, s.paths...)
	if err != nil {
		return fmt.Errorf("failed to load stored configurations: %w", err)
	}

	s.mu.Lock()
	s.requests = requests
	s.mu.Unlock()

	ctxlog.FromContext(ctx).Debug("Stored configurations loaded.", "count", len(requests))
	return nil
}

// All returns a copy of the cached configurations in load order.
func (s *Store) All() []launch.Request {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]launch.Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Lookup returns the stored configuration with the given display name.
func (s *Store) Lookup(name string) (launch.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, req := range s.requests {
		if req.Name == name {
			return req, true
		}
	}
	return launch.Request{}, false
}

// First returns the first stored configuration, if any. Commands that need
// "the" saved configuration without a name use it.
func (s *Store) First() (launch.Request, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.requests) == 0 {
		return launch.Request{}, false
	}
	return s.requests[0], true
}
