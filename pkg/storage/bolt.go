package storage

import (
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/petalworks/shopfront/pkg/errors"
)

// bucketRecords holds every record written through the store.
var bucketRecords = []byte("records")

// BoltStore implements Store on top of a BoltDB file.
type BoltStore struct {
	db *bolt.DB
}

// Compile-time interface check to ensure proper implementation.
var _ Store = (*BoltStore)(nil)

// OpenBolt opens (creating if needed) a BoltDB-backed store at path.
func OpenBolt(path string) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, errors.NewStorageError("open", path, err)
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, errors.NewStorageError("open", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketRecords)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.NewStorageError("open", path, err)
	}

	return &BoltStore{db: db}, nil
}

// Read returns the record for key, if any.
func (s *BoltStore) Read(key string) ([]byte, bool, error) {
	var data []byte
	err := s.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketRecords).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		return nil, false, errors.NewStorageError("read", key, err)
	}
	return data, data != nil, nil
}

// Write stores the record for key.
func (s *BoltStore) Write(key string, value []byte) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).Put([]byte(key), value)
	})
	if err != nil {
		return errors.NewStorageError("write", key, err)
	}
	return nil
}

// Erase removes the record for key.
func (s *BoltStore) Erase(key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketRecords).Delete([]byte(key))
	})
	if err != nil {
		return errors.NewStorageError("erase", key, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error {
	if err := s.db.Close(); err != nil {
		return errors.NewStorageError("close", "", err)
	}
	return nil
}
