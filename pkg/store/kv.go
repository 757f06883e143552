// Package store provides the device-local key-value persistence layer every
// trip data slice is written through. The disk implementation is backed by
// diskv; tests inject the in-memory implementation instead.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotFound is returned by Read when no value exists for the key.
var ErrNotFound = errors.New("store: key not found")

// ErrStorageFull is returned by Write when the device is out of space. The
// caller is expected to warn the user rather than silently lose the change.
var ErrStorageFull = errors.New("store: storage full")

// KV is the storage capability injected into every trip store.
type KV interface {
	Read(key string) ([]byte, error)
	Write(key string, value []byte) error
	Erase(key string) error
	Has(key string) bool
	Keys(ctx context.Context) <-chan string
}

// ReadJSON reads and unmarshals the value at key into v.
func ReadJSON(kv KV, key string, v interface{}) error {
	data, err := kv.Read(key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("store: decode %s: %w", key, err)
	}
	return nil
}

// WriteJSON marshals v and writes it at key.
func WriteJSON(kv KV, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return kv.Write(key, data)
}
