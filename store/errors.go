package store

import "errors"

// Domain error sentinels. Callers classify with errors.Is and map to
// transport status codes at the boundary; none of these are fatal to
// the process.
var (
	// ErrNotFound: the identified entity does not exist in the branch.
	ErrNotFound = errors.New("not found")

	// ErrValidation: malformed submission, rejected before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrConflict: the operation collides with current state, e.g.
	// opening an already-open register or mutating a terminal order.
	ErrConflict = errors.New("conflict")

	// ErrInvariant: a domain invariant would be violated, e.g. a combo
	// cycle during recipe expansion. The whole operation is aborted.
	ErrInvariant = errors.New("invariant violation")
)
