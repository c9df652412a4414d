package store

import "errors"

// Sentinel errors for the credential store and the flows built on it.
// Callers match these with errors.Is.
var (
	// Validation errors, raised before any storage call.
	ErrMissingField     = errors.New("missing field")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidRole      = errors.New("invalid role")

	// Lookup / authentication outcomes.
	ErrNotFound        = errors.New("account not found")
	ErrInvalidUsername = errors.New("invalid username")
	ErrInvalidPassword = errors.New("invalid password")

	// Storage errors, classified at the store boundary.
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrStorage            = errors.New("storage error")
)
