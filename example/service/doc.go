// Package service holds the movie list application's domain logic: user
// accounts and per-user movie lists on top of pkg/store.
//
// Errors carry conduit error kinds (ErrNotFound, ErrAlreadyExists,
// ErrInvalidArgument) so lifecycle hooks can map them to responses.
package service
