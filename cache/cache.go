package cache

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/bananemure/fastrtext/core"
)

// Cache is a persistent word-vector cache backed by BadgerDB. Entries are
// keyed by model fingerprint and word, so several models can share one
// cache directory without mixing vectors.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens a vector cache at the specified directory.
// Creates the directory if it doesn't exist.
func Open(filePath string, inMemory bool) (*Cache, error) {
	var opts badger.Options

	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		// Ensure directory exists
		info, err := os.Stat(filePath)
		if err != nil {
			if os.IsNotExist(err) {
				if err := os.MkdirAll(filePath, 0755); err != nil {
					return nil, err
				}
				info, err = os.Stat(filePath)
				if err != nil {
					return nil, err
				}
			} else {
				return nil, err
			}
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", filePath)
		}
		opts = badger.DefaultOptions(filePath)
	}

	opts.Logger = &badgerLoggerAdapter{logger: slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Cache{
		db:     db,
		logger: slog.Default(),
	}, nil
}

// NewMemoryCache creates an in-memory cache for testing.
// Caller must close it when done.
func NewMemoryCache() (*Cache, error) {
	return Open("", true)
}

// Get returns the cached vector for the word under the given model
// fingerprint. The second return value reports whether an entry was found.
func (c *Cache) Get(fingerprint core.ID, word string) ([]float32, bool, error) {
	var vector []float32
	found := false

	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(makeVectorKey(fingerprint, word))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return nil
			}
			return err
		}
		return item.Value(func(val []byte) error {
			entry, _, err := core.CachedVectorMUS.Unmarshal(val)
			if err != nil {
				return err
			}
			vector = entry.Vector
			found = true
			return nil
		})
	})
	if err != nil {
		return nil, false, err
	}
	return vector, found, nil
}

// Put stores the vector for the word under the given model fingerprint,
// overwriting any existing entry.
func (c *Cache) Put(fingerprint core.ID, word string, vector []float32) error {
	entry := core.CachedVector{
		Word:       word,
		Vector:     vector,
		InsertedAt: time.Now().UTC(),
	}
	buf := make([]byte, core.CachedVectorMUS.Size(entry))
	core.CachedVectorMUS.Marshal(entry, buf)

	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(makeVectorKey(fingerprint, word), buf)
	})
}

// PutAll stores one vector per word in a single transaction.
// Words and vectors must have the same length.
func (c *Cache) PutAll(fingerprint core.ID, words []string, vectors [][]float32) error {
	if len(words) != len(vectors) {
		return core.ErrLengthMismatch
	}

	now := time.Now().UTC()
	return c.db.Update(func(tx *badger.Txn) error {
		for i, word := range words {
			entry := core.CachedVector{
				Word:       word,
				Vector:     vectors[i],
				InsertedAt: now,
			}
			buf := make([]byte, core.CachedVectorMUS.Size(entry))
			core.CachedVectorMUS.Marshal(entry, buf)
			if err := tx.Set(makeVectorKey(fingerprint, word), buf); err != nil {
				return err
			}
		}
		return nil
	})
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}
