package storage

import "errors"

// ErrKeyNotFound is returned by Backend.Get when the key has no value.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a string key-value store for session credentials. A backend may
// be unavailable (nil, or failing at the filesystem level); the TokenStore
// absorbs every backend error and degrades to safe defaults.
type Backend interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Remove(key string) error
}
