package catalog

import (
	"sync"

	"github.com/leapstack-labs/itemdex/internal/ingest"
)

// Store maps tenant ids to their catalogs. Safe for concurrent use.
// Catalog values are immutable snapshots, so the mutex only guards the
// tenant map itself; a Replace for one tenant never blocks readers of
// another beyond the O(1) map access.
type Store struct {
	mu      sync.RWMutex
	tenants map[string]*Catalog
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{tenants: make(map[string]*Catalog)}
}

// Replace installs a new catalog for the tenant, discarding any previous
// one. The swap is atomic from the reader's point of view: a Get started
// before the swap sees the old snapshot in full, one started after sees
// the new snapshot in full.
func (s *Store) Replace(tenantID string, records []ingest.Record) *Catalog {
	c := newCatalog(records)

	s.mu.Lock()
	s.tenants[tenantID] = c
	s.mu.Unlock()

	return c
}

// Get returns the tenant's current catalog snapshot.
func (s *Store) Get(tenantID string) (*Catalog, bool) {
	s.mu.RLock()
	c, ok := s.tenants[tenantID]
	s.mu.RUnlock()
	return c, ok
}

// Delete removes the tenant's catalog. Reports whether one existed.
func (s *Store) Delete(tenantID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tenants[tenantID]; !ok {
		return false
	}
	delete(s.tenants, tenantID)
	return true
}

// Count returns the number of tenants with a registered catalog.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tenants)
}
