package storage

import "errors"

// ErrKeyNotFound is returned by Get for a key that has never been
// written.
var ErrKeyNotFound = errors.New("key not found")

// Store is the byte-oriented key-value substrate the record collections
// persist into. Values are written whole; there is no partial update
// and no isolation between callers.
type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Delete(key string) error
	Healthy() bool
}
