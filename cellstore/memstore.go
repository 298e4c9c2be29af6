package cellstore

import (
	"context"
	"sync"

	"github.com/forestrie/go-cellmap/boc"
)

// MemStore is an in-memory Store. It is safe for concurrent use.
type MemStore struct {
	mu      sync.RWMutex
	cells   map[[boc.HashBytes]byte]*boc.Cell
	metrics *Metrics
}

// NewMemStore returns an empty in-memory store. metrics may be nil.
func NewMemStore(metrics *Metrics) *MemStore {
	return &MemStore{
		cells:   make(map[[boc.HashBytes]byte]*boc.Cell),
		metrics: metrics,
	}
}

func (s *MemStore) Put(_ context.Context, c *boc.Cell) ([boc.HashBytes]byte, error) {
	hash := c.Hash()
	s.mu.Lock()
	s.cells[hash] = c
	s.mu.Unlock()
	s.metrics.put()
	return hash, nil
}

func (s *MemStore) Get(_ context.Context, hash [boc.HashBytes]byte) (*boc.Cell, error) {
	s.mu.RLock()
	c, ok := s.cells[hash]
	s.mu.RUnlock()
	s.metrics.get()
	if !ok {
		s.metrics.miss()
		return nil, ErrNotFound
	}
	return c, nil
}

func (s *MemStore) Has(_ context.Context, hash [boc.HashBytes]byte) (bool, error) {
	s.mu.RLock()
	_, ok := s.cells[hash]
	s.mu.RUnlock()
	return ok, nil
}

// Len returns the number of stored roots.
func (s *MemStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cells)
}
