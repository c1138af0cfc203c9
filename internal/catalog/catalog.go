// Package catalog holds per-tenant item catalogs in process memory.
// A catalog is an immutable snapshot: replacement swaps the whole snapshot,
// so readers never observe a half-updated mix of old and new entries.
// Nothing here survives a process restart; that is a design boundary,
// the source of truth is the uploaded definition file.
package catalog

import (
	"errors"
	"strings"

	"github.com/leapstack-labs/itemdex/internal/ingest"
)

// ErrNoCatalog is returned when a tenant has no catalog registered.
// Distinct from a registered catalog with zero items.
var ErrNoCatalog = errors.New("no catalog registered for tenant")

// Catalog is one tenant's item set. Immutable after construction.
type Catalog struct {
	items map[int]string
	lower map[int]string // derived lowercase shadow, rebuilt on every replace
	order []int          // ids in insertion order
}

// newCatalog builds a catalog snapshot from parsed records.
// The lowercase shadow index is derived here and nowhere else, keeping the
// two mappings in lockstep by construction.
func newCatalog(records []ingest.Record) *Catalog {
	c := &Catalog{
		items: make(map[int]string, len(records)),
		lower: make(map[int]string, len(records)),
		order: make([]int, 0, len(records)),
	}
	for _, r := range records {
		c.items[r.ID] = r.Name
		c.lower[r.ID] = strings.ToLower(r.Name)
		c.order = append(c.order, r.ID)
	}
	return c
}

// Len returns the number of items.
func (c *Catalog) Len() int { return len(c.items) }

// Name returns the display name for an id.
func (c *Catalog) Name(id int) (string, bool) {
	name, ok := c.items[id]
	return name, ok
}

// LowerName returns the precomputed lowercase name for an id.
func (c *Catalog) LowerName(id int) (string, bool) {
	name, ok := c.lower[id]
	return name, ok
}

// IDs returns item ids in catalog insertion order.
// The returned slice is shared; callers must not mutate it.
func (c *Catalog) IDs() []int { return c.order }
