package catalog

import (
	"fmt"
	"strings"
)

// Kind is the heuristic item classification. Items have no stored category
// field; the kind is a pure function of the display name.
type Kind int

const (
	// KindBlock covers every item whose name does not look seed-like.
	KindBlock Kind = iota
	// KindSeed covers items whose name contains "seed" (case-insensitive).
	KindSeed
)

const seedMarker = "seed"

// Classify derives an item's kind from its display name.
func Classify(name string) Kind {
	if strings.Contains(strings.ToLower(name), seedMarker) {
		return KindSeed
	}
	return KindBlock
}

func (k Kind) String() string {
	switch k {
	case KindSeed:
		return "seed"
	default:
		return "block"
	}
}

// Category is a query-time filter over item kinds.
type Category string

const (
	CategoryAll   Category = "all"
	CategoryBlock Category = "block"
	CategorySeed  Category = "seed"
)

// ParseCategory maps a wire string to a Category. Empty input means all.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case "", CategoryAll:
		return CategoryAll, nil
	case CategoryBlock, "blocks":
		return CategoryBlock, nil
	case CategorySeed, "seeds":
		return CategorySeed, nil
	default:
		return "", fmt.Errorf("unknown category %q (want all, block, or seed)", s)
	}
}

// Matches reports whether a name passes the category filter.
func (c Category) Matches(name string) bool {
	switch c {
	case CategorySeed:
		return Classify(name) == KindSeed
	case CategoryBlock:
		return Classify(name) == KindBlock
	default:
		return true
	}
}
