// Package storage holds the local key-value stores the application list is kept in.
package storage

import "errors"

// ErrNotFound is returned when a slot has never been written
var ErrNotFound = errors.New("storage slot not found")

// KeyValueStore is an opaque get/set store of named text slots
type KeyValueStore interface {
	Get(key string) (string, error)
	Set(key, value string) error
}
