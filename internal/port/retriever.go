package port

import (
	"context"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
)

// SearchOptions control a ranked search.
type SearchOptions struct {
	Limit         int     // max results returned; callers "load more" by re-querying with a larger limit
	MinSimilarity float64 // vector-path similarity floor; ignored by the keyword path
	Author        string  // when non-empty, only items by this author are scored
}

// Ranker produces an ordered list of search results for a query.
// It never fails: degraded capabilities (no embedder, empty store)
// yield fewer or zero results rather than errors.
type Ranker interface {
	// Search returns the ranked results truncated to the limit, plus
	// the count of all retained candidates before truncation.
	Search(ctx context.Context, query string, opts SearchOptions) ([]domain.SearchResult, int)
}
