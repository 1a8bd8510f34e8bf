// Package kv stores compiled grammar artifacts under hierarchical keys such
// as ["grammar", "cardinal", "det", "1"]. A BadgerDB-backed store persists
// them across runs; the in-memory store serves tests and one-shot tools.
package kv

import (
	"context"
	"errors"
	"iter"
	"strings"
)

// ErrNotFound is returned when a key does not exist in the store.
var ErrNotFound = errors.New("kv: not found")

// Separator joins key segments in the encoded form.
const Separator = ":"

// Key is a hierarchical path. Segments must not contain Separator.
type Key []string

// String returns the encoded key.
func (k Key) String() string {
	return strings.Join(k, Separator)
}

func (k Key) encode() []byte {
	return []byte(k.String())
}

func decodeKey(b []byte) Key {
	return Key(strings.Split(string(b), Separator))
}

// prefixBytes returns the encoded prefix followed by Separator so that
// ["a", "b"] does not match "a:bc". An empty prefix matches everything.
func (k Key) prefixBytes() []byte {
	if len(k) == 0 {
		return nil
	}
	return append(k.encode(), Separator...)
}

// Entry is a key/value pair yielded by List.
type Entry struct {
	Key   Key
	Value []byte
}

// Store is a key/value store with path-based keys.
type Store interface {
	// Get returns the value for key, or ErrNotFound.
	Get(ctx context.Context, key Key) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key Key, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key Key) error
	// List yields the entries under prefix in lexicographic key order.
	List(ctx context.Context, prefix Key) iter.Seq2[Entry, error]
	// Close releases the store.
	Close() error
}
