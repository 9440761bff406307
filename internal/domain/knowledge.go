package domain

import (
	"strings"
	"time"
)

// Authors present in the curated knowledge base.
const (
	AuthorPaulGraham = "Paul Graham"
	AuthorNaval      = "Naval Ravikant"
)

// Item types. Essays are chunked multi-part documents; passages and
// clips are short, atomic, single-chunk records.
const (
	TypeEssay   = "essay"
	TypePassage = "passage"
	TypeClip    = "clip"
)

// KnowledgeItem is the atomic retrievable unit: one chunk of a source
// document, immutable once written into a snapshot.
type KnowledgeItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Type        string    `json:"type"`
	Content     string    `json:"content"`
	Topics      []string  `json:"topics,omitempty"`
	Source      string    `json:"source"`
	ChunkIndex  int       `json:"chunkIndex"`
	TotalChunks int       `json:"totalChunks"`
	Embedding   []float32 `json:"embedding,omitempty"`
}

// Metadata describes how a snapshot was generated.
type Metadata struct {
	GeneratedAt    time.Time `json:"generatedAt"`
	TotalItems     int       `json:"totalItems"`
	EmbeddingModel string    `json:"embeddingModel,omitempty"`
	ChunkSize      int       `json:"chunkSize"`
	Overlap        int       `json:"overlap"`
}

// Database is the full snapshot artifact: metadata plus the ordered
// list of all items.
type Database struct {
	Metadata Metadata        `json:"metadata"`
	Items    []KnowledgeItem `json:"items"`
}

// SearchResult pairs an item with its raw similarity signal (0-1) and
// the blended 0-100 relevance score used for ranking.
type SearchResult struct {
	Item           KnowledgeItem `json:"item"`
	Similarity     float64       `json:"similarity"`
	RelevanceScore float64       `json:"relevanceScore"`
}

// SearchResponse is what a search call returns to the caller.
type SearchResponse struct {
	Items      []SearchResult `json:"items"`
	TotalFound int            `json:"totalFound"`
	Query      string         `json:"query"`
	SearchTime time.Duration  `json:"searchTime"`
}

// ContextPassage is a chunk stitched together with its immediate
// neighbors from the same source document.
type ContextPassage struct {
	Item     KnowledgeItem   `json:"item"`
	FullText string          `json:"fullText"`
	Context  []KnowledgeItem `json:"context"`
}

// Stats holds aggregate counts over a loaded snapshot.
type Stats struct {
	TotalItems int            `json:"totalItems"`
	Embedded   int            `json:"embedded"`
	ByAuthor   map[string]int `json:"byAuthor"`
	ByType     map[string]int `json:"byType"`
	ByTopic    map[string]int `json:"byTopic"`
}

// authorAliases maps each author to the lowercase substrings that count
// as a textual mention in a query. These are deliberately simple
// substring checks; the ranking constants are calibrated against them.
var authorAliases = map[string][]string{
	AuthorPaulGraham: {"paul graham", "pg"},
	AuthorNaval:      {"naval"},
}

// MentionsAuthor reports whether the lowercased query textually
// references the given author.
func MentionsAuthor(loweredQuery, author string) bool {
	for _, alias := range authorAliases[author] {
		if alias != "" && strings.Contains(loweredQuery, alias) {
			return true
		}
	}
	return false
}

// atomicAuthors are authors whose sources are always single-chunk;
// context expansion returns their items unchanged.
var atomicAuthors = map[string]bool{
	AuthorNaval: true,
}

// IsAtomicAuthor reports whether the author's content is always atomic.
func IsAtomicAuthor(author string) bool {
	return atomicAuthors[author]
}
