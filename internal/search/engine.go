// Package search implements catalog query matching: literal case-insensitive
// substring containment with an optional category filter, results ordered by
// item id.
package search

import (
	"sort"
	"strings"

	"github.com/leapstack-labs/itemdex/internal/catalog"
)

// DefaultLimit is the match-count ceiling. A result set that reaches the
// limit is treated upstream as "query too broad" rather than shown truncated.
const DefaultLimit = 500

// Match is one (id, name) query hit.
type Match struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// Engine answers queries against the tenant catalog store. Stateless:
// every call reads the tenant's current snapshot and builds a fresh result.
type Engine struct {
	store *catalog.Store
}

// NewEngine creates an engine over the given store.
func NewEngine(store *catalog.Store) *Engine {
	return &Engine{store: store}
}

// Query returns matches for the trimmed, lowercased query within the
// tenant's catalog,sorted ascending by id and truncated to limit
// (DefaultLimit when limit <= 0).
//
// An absent catalog returns catalog.ErrNoCatalog. An empty catalog or an
// empty trimmed query returns an empty result with no error.
func (e *Engine) Query(tenantID, raw string, cat catalog.Category, limit int) ([]Match, error) {
	c, ok := e.store.Get(tenantID)
	if !ok {
		return nil, catalog.ErrNoCatalog
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" || c.Len() == 0 {
		return nil, nil
	}

	var matches []Match
	for _, id := range c.IDs() {
		lower, _ := c.LowerName(id)
		if !strings.Contains(lower, needle) {
			continue
		}
		name, _ := c.Name(id)
		if !cat.Matches(name) {
			continue
		}
		matches = append(matches, Match{ID: id, Name: name})
	}

	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches, nil
}

// Lookup returns a single item by id together with its heuristic kind.
func (e *Engine) Lookup(tenantID string, id int) (Match, catalog.Kind, error) {
	c, ok := e.store.Get(tenantID)
	if !ok {
		return Match{}, 0, catalog.ErrNoCatalog
	}
	name, ok := c.Name(id)
	if !ok {
		return Match{}, 0, ErrItemNotFound
	}
	return Match{ID: id, Name: name}, catalog.Classify(name), nil
}
