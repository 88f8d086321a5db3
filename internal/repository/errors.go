package repository

import "errors"

var (
	// ErrNotFound signals a missing or unresolvable document id. It is
	// the only error handlers translate to 404; everything else is a
	// generic failure.
	ErrNotFound = errors.New("not found")

	ErrInvalidID = errors.New("invalid id")
)
