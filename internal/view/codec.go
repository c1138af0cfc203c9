package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/leapstack-labs/itemdex/internal/catalog"
)

// Action identifies a navigation control.
type Action string

const (
	ActionFirst     Action = "first"
	ActionPrev      Action = "prev"
	ActionNext      Action = "next"
	ActionLast      Action = "last"
	ActionIndicator Action = "page"
)

// Control is one interactive element attached to a rendered page.
// The indicator control has no ID; its label is the round-tripped
// position state.
type Control struct {
	ID       string `json:"id,omitempty"`
	Action   Action `json:"action"`
	Label    string `json:"label"`
	Disabled bool   `json:"disabled"`
}

// controlPrefix namespaces itemdex control ids among other components the
// platform may deliver activations for.
const controlPrefix = "nav"

const controlSep = ":"

// EncodeControlID packs an action and its originating query context into a
// control identifier: "nav:<action>:<category>:<query>". The query comes
// last so it may itself contain the separator.
func EncodeControlID(action Action, vc Context) string {
	cat := vc.Category
	if cat == "" {
		cat = catalog.CategoryAll
	}
	return strings.Join([]string{controlPrefix, string(action), string(cat), vc.Query}, controlSep)
}

// DecodeControlID unpacks a control identifier. The input is untrusted
// round-tripped state, so anything malformed is rejected outright.
func DecodeControlID(id string) (Action, Context, error) {
	parts := strings.SplitN(id, controlSep, 4)
	if len(parts) != 4 || parts[0] != controlPrefix {
		return "", Context{}, fmt.Errorf("malformed control id %q", id)
	}

	action := Action(parts[1])
	switch action {
	case ActionFirst, ActionPrev, ActionNext, ActionLast:
	default:
		return "", Context{}, fmt.Errorf("unknown control action %q", parts[1])
	}

	cat, err := catalog.ParseCategory(parts[2])
	if err != nil {
		return "", Context{}, fmt.Errorf("control id %q: %w", id, err)
	}

	return action, Context{Query: parts[3], Category: cat}, nil
}

// FormatIndicator renders the "current/total" page-indicator label, the
// only place pagination position is carried between requests.
func FormatIndicator(page, totalPages int) string {
	return fmt.Sprintf("%d/%d", page, totalPages)
}

// ParseIndicator recovers (current, total) from an indicator label.
// Strict parse-or-reject: both halves must be positive integers with
// current <= total.
func ParseIndicator(label string) (page, totalPages int, err error) {
	cur, tot, ok := strings.Cut(label, "/")
	if !ok {
		return 0, 0, fmt.Errorf("malformed page indicator %q", label)
	}
	page, err = strconv.Atoi(cur)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed page indicator %q: %w", label, err)
	}
	totalPages, err = strconv.Atoi(tot)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed page indicator %q: %w", label, err)
	}
	if page < 1 || totalPages < 1 || page > totalPages {
		return 0, 0, fmt.Errorf("page indicator %q out of range", label)
	}
	return page, totalPages, nil
}
