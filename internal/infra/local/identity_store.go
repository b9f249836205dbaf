// Package local keeps the terminal player's identity in an embedded Badger database,
// the on-disk counterpart of a browser's local storage.
package local

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"qr-quiz-service/internal/app"
)

// Store is a durable app.KeyValue for a single device profile.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the store in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLogger(nil)
	if dir == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Identity returns the profile stored in this database.
func (s *Store) Identity() app.IdentityStore {
	return app.NewKVIdentity(s)
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(value), true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (s *Store) SetIfAbsent(_ context.Context, key, value string) (string, error) {
	stored := value
	err := s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		switch {
		case err == nil:
			existing, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			stored = string(existing)
			return nil
		case errors.Is(err, badger.ErrKeyNotFound):
			return txn.Set([]byte(key), []byte(value))
		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}
	return stored, nil
}
