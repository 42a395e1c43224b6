// Package repository implements data access for reservations on top of
// database/sql.  Sentinel errors declared here let handlers and the
// booking engine distinguish failure modes with errors.Is without
// inspecting driver-specific error values.
package repository

import "errors"

// ErrNotFound is returned when a reservation id does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrNotFound = errors.New("reservation not found")
