package repository

import "errors"

var (
	// ErrNotFound signals that a lookup by id resolved nothing. Callers are
	// expected to check for it rather than treat it as fatal.
	ErrNotFound = errors.New("not found")

	// ErrSeatUnavailable signals a hold attempt on a seat that is not available.
	ErrSeatUnavailable = errors.New("seat unavailable")

	// ErrDuplicateEmail signals a registration with an already used email.
	ErrDuplicateEmail = errors.New("email already registered")
)
