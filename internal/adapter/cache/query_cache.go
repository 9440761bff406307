package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
	"sync"
	"time"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

// QueryCache memoizes ranked search results. The knowledge store is
// immutable after load, so entries never need invalidation on data
// changes; a TTL plus LRU eviction keeps the cache bounded.
type QueryCache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
}

type cacheEntry struct {
	results    []domain.SearchResult
	totalFound int
	timestamp  time.Time
}

// NewQueryCache creates a cache with the given capacity and TTL;
// non-positive values fall back to 100 entries and 5 minutes.
func NewQueryCache(maxSize int, ttl time.Duration) *QueryCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &QueryCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// key derives a cache key from the query and every option that
// affects ranking, so a "load more" call (larger limit) is a distinct
// entry.
func key(query string, opts port.SearchOptions) string {
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write([]byte(opts.Author))

	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(opts.Limit))
	binary.BigEndian.PutUint64(buf[8:], math.Float64bits(opts.MinSimilarity))
	h.Write(buf[:])

	return hex.EncodeToString(h.Sum(nil)[:16])
}

// Get returns the cached results for a search, if fresh.
func (c *QueryCache) Get(query string, opts port.SearchOptions) ([]domain.SearchResult, int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(query, opts)
	entry, exists := c.entries[k]
	if !exists {
		return nil, 0, false
	}

	if time.Since(entry.timestamp) > c.ttl {
		delete(c.entries, k)
		c.removeFromOrder(k)
		return nil, 0, false
	}

	c.moveToEnd(k)
	return entry.results, entry.totalFound, true
}

// Put stores search results.
func (c *QueryCache) Put(query string, opts port.SearchOptions, results []domain.SearchResult, totalFound int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key(query, opts)
	if _, exists := c.entries[k]; exists {
		c.entries[k] = &cacheEntry{results: results, totalFound: totalFound, timestamp: time.Now()}
		c.moveToEnd(k)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[k] = &cacheEntry{results: results, totalFound: totalFound, timestamp: time.Now()}
	c.order = append(c.order, k)
}

// Size returns the number of cached entries.
func (c *QueryCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *QueryCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *QueryCache) moveToEnd(k string) {
	c.removeFromOrder(k)
	c.order = append(c.order, k)
}

func (c *QueryCache) removeFromOrder(k string) {
	for i, existing := range c.order {
		if existing == k {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}
