package service

import "errors"

// Error classes surfaced to callers. Services wrap these with a
// human-readable reason via fmt.Errorf("%w: ..."); handlers classify with
// errors.Is to pick a response code.
var (
	// ErrNotFound means a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState means the requested lifecycle transition is illegal,
	// e.g. a second check-in or a check-out without a prior check-in.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation means the input itself was malformed.
	ErrValidation = errors.New("validation failed")
)
