package workbench

import "errors"

// Operations detect these before applying any mutation, so a failed call
// always leaves the store untouched.
var (
	// ErrNotFound means a referenced photo, item, or room id is not in the
	// active claim.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means a precondition on current relationships failed,
	// e.g. a thumbnail that is not a member photo or a duplicate room kind.
	ErrInvalidState = errors.New("invalid state")

	// ErrPreconditionFailed means the operation is blocked by entity state
	// the UI should have prevented, e.g. deleting a room that still has items.
	ErrPreconditionFailed = errors.New("precondition failed")
)
