package store

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"
)

var bucketEmbeddings = []byte("embeddings")

// EmbedCache is a bbolt-backed cache of content-hash to embedding
// vector, used by the builder so that rebuilding a snapshot does not
// re-bill the embedding API for unchanged chunks.
type EmbedCache struct {
	db *bbolt.DB
}

// OpenEmbedCache opens (or creates) the cache database at path.
func OpenEmbedCache(path string) (*EmbedCache, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketEmbeddings)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create embeddings bucket: %w", err)
	}

	return &EmbedCache{db: db}, nil
}

func cacheKey(model, text string) []byte {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return h.Sum(nil)
}

// Get returns the cached vector for (model, text), if present.
func (c *EmbedCache) Get(model, text string) ([]float32, bool) {
	var vec []float32
	found := false

	c.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return nil
		}
		data := b.Get(cacheKey(model, text))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &vec); err != nil {
			return nil // skip corrupted entries
		}
		found = true
		return nil
	})

	if !found {
		return nil, false
	}
	return vec, true
}

// Put stores a vector for (model, text).
func (c *EmbedCache) Put(model, text string, vec []float32) error {
	data, err := json.Marshal(vec)
	if err != nil {
		return err
	}

	return c.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketEmbeddings)
		if b == nil {
			return fmt.Errorf("embeddings bucket not found")
		}
		return b.Put(cacheKey(model, text), data)
	})
}

// Close closes the underlying database.
func (c *EmbedCache) Close() error {
	return c.db.Close()
}
