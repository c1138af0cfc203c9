package service

import "fmt"

// ValidationError rejects an upload whose content has no recognizable
// definition lines. Nothing is stored.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid item file: %s", e.Reason)
}

// EmptyResultError rejects an upload whose parse produced zero usable
// records. Nothing is stored.
type EmptyResultError struct {
	Stats ParseStats
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no usable item records parsed (%d line(s) rejected)", e.Stats.Rejected)
}

// NotFoundError reports an absent catalog or item.
type NotFoundError struct {
	TenantID string
	ItemID   int  // set when the miss was an item lookup
	Item     bool // true for an item miss within an existing catalog
}

func (e *NotFoundError) Error() string {
	if e.Item {
		return fmt.Sprintf("item %d not found in catalog for tenant %s", e.ItemID, e.TenantID)
	}
	return fmt.Sprintf("no catalog registered for tenant %s; upload an items.txt first", e.TenantID)
}

// TooManyMatchesError rejects an over-broad query rather than presenting
// a silently truncated result.
type TooManyMatchesError struct {
	Query string
	Limit int
}

func (e *TooManyMatchesError) Error() string {
	return fmt.Sprintf("query %q matched %d or more items; narrow the query", e.Query, e.Limit)
}

// PermissionError refuses an operation the caller is not allowed to run.
type PermissionError struct {
	Op string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("%s requires administrator permission", e.Op)
}
