// Package collapse persists which structural paths are currently folded.
// Keying by path rather than row index keeps entries valid across
// re-flattens: row indices shift as the document grows, paths do not.
package collapse

import (
	"sync"

	"github.com/oakwood-commons/jsonpane/internal/value"
)

// Store maps structural paths to their collapsed state. Absent means
// expanded, so memory grows only with user interaction, never with document
// size.
//
// Reads may happen concurrently from parallel flatten workers; writes are
// serialized by the owning widget between flattens, but the store guards
// itself with an RWMutex so that contract is not load-bearing for safety.
type Store struct {
	mu        sync.RWMutex
	collapsed map[string]struct{}
}

// NewStore returns an empty store; every path starts expanded.
func NewStore() *Store {
	return &Store{collapsed: make(map[string]struct{})}
}

// Set records the collapsed state for a path. Setting expanded removes the
// entry entirely.
func (s *Store) Set(p value.Path, collapsed bool) {
	key := p.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if collapsed {
		s.collapsed[key] = struct{}{}
	} else {
		delete(s.collapsed, key)
	}
}

// Toggle flips the collapsed state for a path and returns the new state.
func (s *Store) Toggle(p value.Path) bool {
	key := p.String()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.collapsed[key]; ok {
		delete(s.collapsed, key)
		return false
	}
	s.collapsed[key] = struct{}{}
	return true
}

// IsCollapsed reports whether a path is collapsed. Unknown paths are
// expanded.
func (s *Store) IsCollapsed(p value.Path) bool {
	key := p.String()
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.collapsed[key]
	return ok
}

// Clear removes every entry, expanding the whole document.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collapsed = make(map[string]struct{})
}

// Len returns the number of collapsed paths.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.collapsed)
}
