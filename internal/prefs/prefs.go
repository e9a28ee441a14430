// ABOUTME: Persisted local preferences backed by a badger key-value store.
// ABOUTME: Values are JSON-encoded; a missing isFirstTimeUser key means true.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"

	badger "github.com/dgraph-io/badger/v3"
)

// Keys used in the store.
const (
	KeyFirstTimeUser = "isFirstTimeUser"
	KeyAuthSession   = "auth.session"
)

// Store is a small typed view over a badger database.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the preference store in dir.
func Open(dir string) (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open preferences: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory returns a store that is never written to disk.
func OpenInMemory() (*Store, error) {
	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	if err != nil {
		return nil, fmt.Errorf("open in-memory preferences: %w", err)
	}
	return &Store{db: db}, nil
}

// Close flushes and closes the store.
func (s *Store) Close() error {
	return s.db.Close()
}

// FirstTimeUser reports whether onboarding has yet to be completed.
func (s *Store) FirstTimeUser() (bool, error) {
	first := true
	found, err := s.Get(KeyFirstTimeUser, &first)
	if err != nil {
		return true, err
	}
	if !found {
		return true, nil
	}
	return first, nil
}

// SetFirstTimeUser persists the onboarding flag.
func (s *Store) SetFirstTimeUser(first bool) error {
	return s.Put(KeyFirstTimeUser, first)
}

// Get decodes the value stored under key into v. A missing key returns
// false and leaves v untouched.
func (s *Store) Get(key string, v interface{}) (bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

// Put JSON-encodes v under key.
func (s *Store) Put(key string, v interface{}) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(key string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
