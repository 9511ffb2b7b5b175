package core

import (
	"fmt"
	"sync"
)

// Store owns the authoritative current generation. Readers get snapshots;
// writers replace the grid wholesale or flip single cells under the lock, so
// a toggle always lands on whichever generation is current.
type Store struct {
	mu   sync.RWMutex
	grid *Grid
}

// NewStore takes ownership of g.
func NewStore(g *Grid) *Store {
	return &Store{grid: g}
}

// Size returns the fixed dimensions of the stored grid.
func (s *Store) Size() Size {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Size()
}

// Current returns a snapshot of the current generation.
func (s *Store) Current() *Grid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Snapshot()
}

// Population counts Alive cells in the current generation.
func (s *Store) Population() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.grid.Population()
}

// Replace swaps in next as the current generation. Dimensions are fixed for
// the lifetime of the store.
func (s *Store) Replace(next *Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(next)
}

// Advance computes the next generation from the current one and replaces it
// in a single critical section. fn must not retain or mutate its argument.
func (s *Store) Advance(fn func(*Grid) *Grid) (*Grid, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := fn(s.grid)
	if err := s.replaceLocked(next); err != nil {
		return nil, err
	}
	return next.Snapshot(), nil
}

// Toggle flips a single cell of the current generation.
func (s *Store) Toggle(x, y int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Toggle(x, y)
}

// Reset clears the current generation and stamps the given patterns in order.
// When any pattern does not fit, the current generation is left as it was.
func (s *Store) Reset(patterns ...SeedPattern) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := &Grid{W: s.grid.W, H: s.grid.H, data: make([]uint8, len(s.grid.data))}
	for _, p := range patterns {
		if err := Seed(next, p); err != nil {
			return err
		}
	}
	s.grid = next
	return nil
}

func (s *Store) replaceLocked(next *Grid) error {
	if next == nil || next.W != s.grid.W || next.H != s.grid.H || len(next.data) != len(s.grid.data) {
		got := Size{}
		if next != nil {
			got = next.Size()
		}
		return fmt.Errorf("replace %dx%d grid with %dx%d: %w", s.grid.W, s.grid.H, got.W, got.H, ErrInvalidDimension)
	}
	s.grid = next
	return nil
}
