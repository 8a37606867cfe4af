// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish between
// failure scenarios without inspecting driver-specific errors.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when an operation cannot proceed because of
// conflicting state, such as sending a friend request to someone who
// already has one pending. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
