package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Store is a keyed record store.
//
// Values are serialized on write and decoded on read by every backend, so a
// value returned by Get never aliases the stored record.
type Store[V any] interface {
	// Get retrieves the record at key.
	// Returns ErrNotFound if the key does not exist.
	Get(ctx context.Context, key string) (V, error)

	// Put stores value at key, replacing any existing record.
	Put(ctx context.Context, key string, value V) error

	// Insert stores value at key only if the key is free.
	// Returns ErrExists otherwise.
	Insert(ctx context.Context, key string, value V) error

	// Update atomically replaces the record at key with the result of fn.
	// fn receives the current record and whether it exists. Returning an
	// error from fn aborts the update and returns that error.
	Update(ctx context.Context, key string, fn func(current V, found bool) (V, error)) error

	// Delete removes the record at key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Has reports whether a record exists at key.
	Has(ctx context.Context, key string) (bool, error)

	// Clear removes every record.
	Clear(ctx context.Context) error
}

// Marshaler serializes and deserializes records.
type Marshaler[V any] interface {
	Marshal(v V) ([]byte, error)
	Unmarshal(data []byte) (V, error)
}

type jsonMarshaler[V any] struct{}

func (jsonMarshaler[V]) Marshal(v V) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Join(ErrMarshal, err)
	}
	return data, nil
}

func (jsonMarshaler[V]) Unmarshal(data []byte) (V, error) {
	var v V
	if err := json.Unmarshal(data, &v); err != nil {
		return v, errors.Join(ErrUnmarshal, err)
	}
	return v, nil
}

// JSON returns the default JSON Marshaler.
func JSON[V any]() Marshaler[V] {
	return jsonMarshaler[V]{}
}
