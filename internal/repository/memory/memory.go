package memory

import (
	"sync/atomic"

	"topoconf/internal/domain"
	"topoconf/internal/repository"
)

// Store implements repository.TopologyStore in process memory
type Store struct {
	current atomic.Pointer[domain.TopologyRecord]
}

// New creates a store holding the default topology
func New() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Get returns the current record. Callers must not modify it.
func (s *Store) Get() *domain.TopologyRecord {
	return s.current.Load()
}

// Set replaces the current record. A nil record is stored as the default.
func (s *Store) Set(record *domain.TopologyRecord) {
	if record == nil {
		record = domain.DefaultTopology()
	}
	s.current.Store(record)
}

// Reset replaces the current record with the default topology
func (s *Store) Reset() {
	s.current.Store(domain.DefaultTopology())
}

var _ repository.TopologyStore = (*Store)(nil)
