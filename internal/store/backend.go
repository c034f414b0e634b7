package store

import "errors"

// ErrNotFound is returned when a series has no persisted document yet.
// Callers treat it as "no data", not as a failure.
var ErrNotFound = errors.New("series not found")

// Backend persists whole series documents addressable by a stable name such
// as "flights_GDL-CUN". Documents are opaque bytes at this level; the
// read-modify-write cycle lives in Store.
type Backend interface {
	Load(name string) ([]byte, error)
	Save(name string, data []byte) error
	Close() error
}
