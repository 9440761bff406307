package usecase

import (
	"context"
	"time"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/cache"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

// Search defaults applied when the caller leaves options zero.
const (
	DefaultLimit         = 10
	DefaultMinSimilarity = 0.1
)

// Session is the caller-facing façade over the knowledge store, the
// ranker and the context expander. It loads the store once, serves
// concurrent searches against the immutable snapshot, and memoizes
// ranked results. Discard it with the process or request scope.
type Session struct {
	store    port.KnowledgeStore
	ranker   port.Ranker
	expander *ContextExpander
	cache    *cache.QueryCache
}

// NewSession creates a session. ranker is typically a retriever.Ranker
// over the same store, built with or without an embedder.
func NewSession(store port.KnowledgeStore, ranker port.Ranker) *Session {
	return &Session{
		store:    store,
		ranker:   ranker,
		expander: NewContextExpander(store),
		cache:    cache.NewQueryCache(0, 0),
	}
}

// Load ensures the snapshot is loaded. Optional; Search and the other
// entry points load on demand.
func (s *Session) Load(ctx context.Context) {
	s.store.Load(ctx)
}

// Search runs a ranked search. A zero limit defaults to DefaultLimit
// and a zero minimum similarity to DefaultMinSimilarity; callers
// "load more" by re-invoking with a larger limit. Never returns an
// error: a missing snapshot or unavailable embedder yields fewer or
// zero results.
func (s *Session) Search(ctx context.Context, query string, opts port.SearchOptions) domain.SearchResponse {
	start := time.Now()

	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.MinSimilarity == 0 {
		opts.MinSimilarity = DefaultMinSimilarity
	}

	s.store.Load(ctx)

	results, totalFound, hit := s.cache.Get(query, opts)
	if !hit {
		results, totalFound = s.ranker.Search(ctx, query, opts)
		s.cache.Put(query, opts, results, totalFound)
	}

	return domain.SearchResponse{
		Items:      results,
		TotalFound: totalFound,
		Query:      query,
		SearchTime: time.Since(start),
	}
}

// FullTextWithContext resolves a chunk id to an expanded passage.
func (s *Session) FullTextWithContext(ctx context.Context, id string) (domain.ContextPassage, bool) {
	s.store.Load(ctx)
	return s.expander.Expand(id)
}

// Stats returns aggregate counts over the loaded snapshot.
func (s *Session) Stats(ctx context.Context) domain.Stats {
	s.store.Load(ctx)

	stats := domain.Stats{
		ByAuthor: make(map[string]int),
		ByType:   make(map[string]int),
		ByTopic:  make(map[string]int),
	}

	for _, item := range s.store.Items() {
		stats.TotalItems++
		stats.ByAuthor[item.Author]++
		stats.ByType[item.Type]++
		for _, topic := range item.Topics {
			stats.ByTopic[topic]++
		}
		if len(item.Embedding) > 0 {
			stats.Embedded++
		}
	}

	return stats
}
