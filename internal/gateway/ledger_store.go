package gateway

import (
	"sync"

	"tpp-demo/internal/domain"
)

// MemoryLedgerStore keeps the ledger snapshot in process memory. Callers
// always get and hand over copies.
type MemoryLedgerStore struct {
	mu     sync.RWMutex
	ledger *domain.Ledger
}

func NewMemoryLedgerStore(initial *domain.Ledger) *MemoryLedgerStore {
	return &MemoryLedgerStore{ledger: initial.Clone()}
}

func (s *MemoryLedgerStore) Get() *domain.Ledger {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Clone()
}

func (s *MemoryLedgerStore) Replace(ledger *domain.Ledger) {
	next := ledger.Clone()
	s.mu.Lock()
	s.ledger = next
	s.mu.Unlock()
}
