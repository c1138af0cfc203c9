package search

import "errors"

// ErrItemNotFound is returned by Lookup when the id has no entry in the
// tenant's catalog.
var ErrItemNotFound = errors.New("item id not found in catalog")
