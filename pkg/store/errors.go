package store

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNotFound is returned when a key does not exist.
	ErrNotFound = errors.New("store: record not found")

	// ErrExists is returned by Insert when the key is already taken.
	ErrExists = errors.New("store: record already exists")

	// ErrConflict is returned by Update when concurrent writers kept
	// invalidating the transaction.
	ErrConflict = errors.New("store: concurrent update conflict")

	// ErrMarshal is returned when value serialization fails.
	ErrMarshal = errors.New("store: failed to marshal value")

	// ErrUnmarshal is returned when value deserialization fails.
	ErrUnmarshal = errors.New("store: failed to unmarshal value")
)
