package store

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
)

// BadgerBackend stores series documents in an embedded Badger database.
// Documents keep the same whole-document JSON encoding as the file backend;
// only the addressing differs (series name as key instead of file name).
type BadgerBackend struct {
	db *badger.DB
}

// NewBadgerBackend opens (or creates) the database under dir/badger.
func NewBadgerBackend(dir string) (*BadgerBackend, error) {
	opts := badger.DefaultOptions(filepath.Join(dir, "badger"))
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerBackend{db: db}, nil
}

func (b *BadgerBackend) Load(name string) ([]byte, error) {
	var data []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(name))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read series %s: %w", name, err)
	}
	return data, nil
}

func (b *BadgerBackend) Save(name string, data []byte) error {
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(name), data)
	})
	if err != nil {
		return fmt.Errorf("write series %s: %w", name, err)
	}
	return nil
}

func (b *BadgerBackend) Close() error {
	return b.db.Close()
}
