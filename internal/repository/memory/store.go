// Package memory provides in-process implementations of the repository
// interfaces. State lives for the lifetime of the process; a fresh Store is
// created at startup (and per test) rather than accessed as ambient state.
package memory

import (
	"sync"

	"tripfund/internal/domain"
)

// Store is the process-wide registry of trips and their commitment ledgers.
// Both repositories share one Store, the way the SQL repositories would share
// one database handle.
type Store struct {
	mu           sync.RWMutex
	trips        map[string]*tripRecord
	order        []string          // trip IDs in creation order
	commitmentTr map[string]string // commitment ID -> owning trip ID
}

// tripRecord bundles a trip with its ledger under a single mutex. The mutex
// is the per-trip critical section: the running total, the crossing check,
// the phase transition, and ledger access are all serialized through it.
type tripRecord struct {
	mu     sync.Mutex
	trip   domain.Trip
	ledger []*domain.TravelerCommitment
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		trips:        make(map[string]*tripRecord),
		commitmentTr: make(map[string]string),
	}
}

// record looks up the tripRecord for a trip ID. The caller must not hold any
// record mutex. Lock ordering is always Store.mu before tripRecord.mu.
func (s *Store) record(tripID string) (*tripRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.trips[tripID]
	return rec, ok
}
