// Package nvm models the device's persistent storage: named fixed-size
// regions with durable writes, the settings record, and the two-tier
// swapping buffer that spills rendered strings out of RAM.
package nvm

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	bolt "go.etcd.io/bbolt"
)

const (
	dbName           = "nvm.db"
	dbFilePermission = 0600
)

var (
	// ErrRegionBounds is returned when a write would run past the end
	// of a region.
	ErrRegionBounds = errors.New("nvm: write exceeds region bounds")

	regionBucket   = []byte("regions")
	settingsBucket = []byte("settings")
)

// Store is the persistent backing of the device. Each write transaction is
// durable before it returns: a caller that observes success can rely on
// the bytes surviving power loss.
type Store struct {
	db *bolt.DB
}

// Open opens the store under the given directory, creating it and its
// buckets as needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	db, err := bolt.Open(filepath.Join(dir, dbName), dbFilePermission, nil)
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(regionBucket); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(settingsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Region returns a handle to a named fixed-size scratch region. Prior
// contents are preserved across opens but carry no meaning to callers; the
// region is treated as scratch.
func (s *Store) Region(name string, size int) *Region {
	return &Region{store: s, key: []byte(name), size: size}
}

// Region is a fixed-size window of persistent bytes with random-access
// durable writes.
type Region struct {
	store *Store
	key   []byte
	size  int
}

// Size returns the region capacity in bytes.
func (r *Region) Size() int {
	return r.size
}

// Write stores data at the given offset. The write is durable when the
// call returns.
func (r *Region) Write(from int, data []byte) error {
	if from < 0 || from+len(data) > r.size {
		return ErrRegionBounds
	}
	return r.store.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(regionBucket)
		current := bucket.Get(r.key)
		next := make([]byte, r.size)
		copy(next, current)
		copy(next[from:], data)
		return bucket.Put(r.key, next)
	})
}

// Read returns a copy of the bytes between the two offsets.
func (r *Region) Read(from, to int) []byte {
	if from < 0 || to > r.size || from > to {
		panic(fmt.Sprintf("nvm: read [%d, %d) outside region of %d bytes",
			from, to, r.size))
	}
	out := make([]byte, to-from)
	r.store.db.View(func(tx *bolt.Tx) error {
		current := tx.Bucket(regionBucket).Get(r.key)
		if from < len(current) {
			copy(out, current[from:])
		}
		return nil
	})
	return out
}
