// Package badger provides a persistent AI response cache backed by BadgerDB.
// Entries may carry a TTL after which Badger drops them.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/custodia-labs/noteflow/internal/core/domain"
	"github.com/custodia-labs/noteflow/internal/core/ports/driven"
)

// Verify interface compliance.
var _ driven.ResponseCache = (*Cache)(nil)

const keyPrefix = "ai:"

// Cache stores AI responses in a Badger database.
type Cache struct {
	db    *badger.DB
	ttl   time.Duration
	owned bool
	count atomic.Int64
}

// Open opens (or creates) a cache database in dir.
// A zero ttl keeps entries until they are overwritten.
func Open(dir string, ttl time.Duration) (*Cache, error) {
	db, err := badger.Open(badger.DefaultOptions(dir).WithLoggingLevel(badger.ERROR))
	if err != nil {
		return nil, fmt.Errorf("open response cache: %w", err)
	}
	c := New(db, ttl)
	c.owned = true
	return c, nil
}

// New wraps an existing database. The caller keeps ownership of db.
func New(db *badger.DB, ttl time.Duration) *Cache {
	c := &Cache{db: db, ttl: ttl}
	c.count.Store(int64(c.scan()))
	return c
}

// Get retrieves a response by key. Expired entries are misses.
func (c *Cache) Get(_ context.Context, key string) (domain.AIResponse, bool, error) {
	var resp domain.AIResponse

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &resp)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return domain.AIResponse{}, false, nil
	}
	if err != nil {
		return domain.AIResponse{}, false, fmt.Errorf("get cached response: %w", err)
	}
	return resp, true, nil
}

// Put stores a response under key.
func (c *Cache) Put(_ context.Context, key string, resp domain.AIResponse) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}

	var added bool
	err = c.db.Update(func(txn *badger.Txn) error {
		k := []byte(keyPrefix + key)
		if _, err := txn.Get(k); errors.Is(err, badger.ErrKeyNotFound) {
			added = true
		}
		e := badger.NewEntry(k, data)
		if c.ttl > 0 {
			e = e.WithTTL(c.ttl)
		}
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("store response: %w", err)
	}
	if added {
		c.count.Add(1)
	}
	return nil
}

// Len returns the approximate number of entries written.
// Entries that expired since the last scan are still counted.
func (c *Cache) Len() int {
	return int(c.count.Load())
}

// Close closes the database if the cache opened it.
func (c *Cache) Close() error {
	if !c.owned {
		return nil
	}
	return c.db.Close()
}

func (c *Cache) scan() int {
	n := 0
	_ = c.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			n++
		}
		return nil
	})
	return n
}
