package cache

import (
	"testing"
	"time"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

func sampleResults() []domain.SearchResult {
	return []domain.SearchResult{
		{Item: domain.KnowledgeItem{ID: "a"}, Similarity: 0.5, RelevanceScore: 60},
	}
}

func TestQueryCacheHit(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	opts := port.SearchOptions{Limit: 10, MinSimilarity: 0.1}

	c.Put("leadership", opts, sampleResults(), 3)

	results, total, ok := c.Get("leadership", opts)
	if !ok {
		t.Fatal("expected cache hit")
	}
	if total != 3 || len(results) != 1 || results[0].Item.ID != "a" {
		t.Errorf("unexpected cached payload: %d results, total %d", len(results), total)
	}
}

func TestQueryCacheKeyIncludesOptions(t *testing.T) {
	c := NewQueryCache(10, time.Minute)
	opts := port.SearchOptions{Limit: 10, MinSimilarity: 0.1}
	c.Put("leadership", opts, sampleResults(), 3)

	// A larger limit ("load more") is a distinct entry.
	if _, _, ok := c.Get("leadership", port.SearchOptions{Limit: 20, MinSimilarity: 0.1}); ok {
		t.Error("different limit must miss")
	}
	if _, _, ok := c.Get("leadership", port.SearchOptions{Limit: 10, MinSimilarity: 0.1, Author: "Naval Ravikant"}); ok {
		t.Error("different author filter must miss")
	}
	if _, _, ok := c.Get("other query", opts); ok {
		t.Error("different query must miss")
	}
}

func TestQueryCacheTTL(t *testing.T) {
	c := NewQueryCache(10, time.Millisecond)
	opts := port.SearchOptions{Limit: 10}
	c.Put("q", opts, sampleResults(), 1)

	time.Sleep(5 * time.Millisecond)

	if _, _, ok := c.Get("q", opts); ok {
		t.Error("expired entry must miss")
	}
}

func TestQueryCacheEviction(t *testing.T) {
	c := NewQueryCache(2, time.Minute)
	opts := port.SearchOptions{Limit: 10}

	c.Put("one", opts, sampleResults(), 1)
	c.Put("two", opts, sampleResults(), 1)
	c.Put("three", opts, sampleResults(), 1)

	if c.Size() != 2 {
		t.Fatalf("expected size 2 after eviction, got %d", c.Size())
	}
	if _, _, ok := c.Get("one", opts); ok {
		t.Error("oldest entry should have been evicted")
	}
	if _, _, ok := c.Get("three", opts); !ok {
		t.Error("newest entry should survive")
	}
}
