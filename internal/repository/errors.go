// Package repository implements the MySQL persistence layer.  The
// sentinel errors below are shared with the in-memory implementation in
// repository/memory so that higher layers can distinguish failure
// scenarios regardless of the backing store.
package repository

import "errors"

// ErrNotFound is returned when a lookup, update or delete matches no
// row.  Lookups that join related rows also return it when a referenced
// customer or room no longer exists.
var ErrNotFound = errors.New("not found")

// ErrAlreadyReserved is returned by MarkReserved when the room's
// availability flag is already false.  Handlers should translate this
// into an HTTP 409 response.
var ErrAlreadyReserved = errors.New("room already reserved")
