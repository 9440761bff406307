package retriever

import (
	"context"
	"sort"
	"strings"

	"github.com/phuslu/log"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

// Relevance scoring constants. These were tuned empirically against
// the substring-based topic and author matching; they are preserved
// verbatim because behavior, not derivation, is the contract.
const (
	keywordTopicBonus = 10  // keyword path: flat bonus per topic named in the query
	keywordScoreNorm  = 20  // keyword path: raw score divisor for the 0-1 similarity
	contentTokenBoost = 5   // blended score: query token found in content
	titleTokenBoost   = 10  // blended score: query token found in title
	topicBoost        = 15  // blended score: topic named in the query
	authorBoost       = 20  // blended score: query mentions the item's author
	essayBoost        = 2   // blended score: slight preference for complete essays
	maxRelevance      = 100 // blended score ceiling
)

// Ranker scores knowledge items against a free-text query, using
// vector cosine similarity when an embedder is available and keyword
// overlap otherwise. Embedder failure and embedder absence take the
// same fallback branch.
type Ranker struct {
	store    port.KnowledgeStore
	embedder port.Embedder // nil when the capability is unavailable
}

// NewRanker creates a ranker over the given store. embedder may be nil.
func NewRanker(store port.KnowledgeStore, embedder port.Embedder) *Ranker {
	return &Ranker{
		store:    store,
		embedder: embedder,
	}
}

// Search implements port.Ranker. The author filter is applied before
// scoring on both paths; MinSimilarity applies only to the vector
// path. Results are sorted by relevance score descending with a stable
// tie-break on stored order, then truncated to the limit. The second
// return value is the candidate count before truncation, which lets
// callers "load more" by re-querying with a larger limit.
func (r *Ranker) Search(ctx context.Context, query string, opts port.SearchOptions) ([]domain.SearchResult, int) {
	candidates := r.candidates(opts.Author)

	lowered := strings.ToLower(query)
	tokens := queryTokens(lowered)

	var results []domain.SearchResult
	if queryVec := r.queryVector(ctx, query); queryVec != nil {
		results = vectorScore(queryVec, candidates, opts.MinSimilarity)
	} else {
		results = keywordScore(lowered, tokens, candidates)
	}

	for i := range results {
		results[i].RelevanceScore = relevance(results[i], lowered, tokens)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	totalFound := len(results)
	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results, totalFound
}

// candidates returns the items to score, honoring the author filter.
func (r *Ranker) candidates(author string) []domain.KnowledgeItem {
	items := r.store.Items()
	if author == "" {
		return items
	}

	filtered := make([]domain.KnowledgeItem, 0, len(items))
	for _, item := range items {
		if item.Author == author {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// queryVector embeds the query when the capability is available.
// A nil return means "fall back to keyword search": no embedder
// configured and a failed embedder call are deliberately identical.
func (r *Ranker) queryVector(ctx context.Context, query string) []float32 {
	if r.embedder == nil {
		return nil
	}

	vec, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		log.Warn().Err(err).Msg("query embedding failed, falling back to keyword search")
		return nil
	}
	if len(vec) == 0 {
		return nil
	}
	return vec
}

// vectorScore retains items with an embedding whose cosine similarity
// to the query vector meets the minimum threshold.
func vectorScore(queryVec []float32, candidates []domain.KnowledgeItem, minSimilarity float64) []domain.SearchResult {
	var results []domain.SearchResult
	for _, item := range candidates {
		if len(item.Embedding) == 0 {
			continue
		}
		sim := Cosine(queryVec, item.Embedding)
		if sim >= minSimilarity {
			results = append(results, domain.SearchResult{
				Item:       item,
				Similarity: sim,
			})
		}
	}
	return results
}

// keywordScore retains items with a positive keyword score. Tokens
// count once per occurrence in content and twice per occurrence in
// title, and each topic named in the query adds a flat bonus. The raw
// score normalizes to a 0-1 similarity by dividing by keywordScoreNorm
// and clamping.
func keywordScore(loweredQuery string, tokens []string, candidates []domain.KnowledgeItem) []domain.SearchResult {
	var results []domain.SearchResult
	for _, item := range candidates {
		content := strings.ToLower(item.Content)
		title := strings.ToLower(item.Title)

		score := 0
		for _, token := range tokens {
			score += strings.Count(content, token)
			score += 2 * strings.Count(title, token)
		}
		for _, topic := range item.Topics {
			if topicInQuery(loweredQuery, topic) {
				score += keywordTopicBonus
			}
		}

		if score <= 0 {
			continue
		}

		sim := float64(score) / keywordScoreNorm
		if sim > 1 {
			sim = 1
		}
		results = append(results, domain.SearchResult{
			Item:       item,
			Similarity: sim,
		})
	}
	return results
}

// relevance blends the raw similarity with heuristic boosts into the
// 0-100 score used for ranking and display.
func relevance(result domain.SearchResult, loweredQuery string, tokens []string) float64 {
	item := result.Item
	content := strings.ToLower(item.Content)
	title := strings.ToLower(item.Title)

	score := result.Similarity * 100

	for _, token := range tokens {
		if strings.Contains(content, token) {
			score += contentTokenBoost
		}
		if strings.Contains(title, token) {
			score += titleTokenBoost
		}
	}

	for _, topic := range item.Topics {
		if topicInQuery(loweredQuery, topic) {
			score += topicBoost
		}
	}

	if domain.MentionsAuthor(loweredQuery, item.Author) {
		score += authorBoost
	}

	if item.Type == domain.TypeEssay {
		score += essayBoost
	}

	if score > maxRelevance {
		score = maxRelevance
	}
	if score < 0 {
		score = 0
	}
	return score
}

// topicInQuery reports whether the topic's human-readable form
// (hyphens replaced with spaces) appears in the lowercased query.
func topicInQuery(loweredQuery, topic string) bool {
	return strings.Contains(loweredQuery, strings.ReplaceAll(topic, "-", " "))
}

// queryTokens splits a lowercased query into tokens longer than two
// characters.
func queryTokens(loweredQuery string) []string {
	var tokens []string
	for _, field := range strings.Fields(loweredQuery) {
		if len(field) > 2 {
			tokens = append(tokens, field)
		}
	}
	return tokens
}
