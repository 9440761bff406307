package usecase

import (
	"strings"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

// ContextExpander reconstructs a readable passage around a chunk by
// stitching it together with its immediate neighbors from the same
// source document.
type ContextExpander struct {
	store port.KnowledgeStore
}

// NewContextExpander creates a context expander over the given store.
func NewContextExpander(store port.KnowledgeStore) *ContextExpander {
	return &ContextExpander{store: store}
}

// Expand resolves a chunk id to a passage containing up to one chunk
// before and one after the target, clamped at document edges, joined
// in chunk order with blank lines. Items by atomic authors (always
// single-chunk sources) come back unchanged. The second return value
// is false when the id does not resolve.
func (e *ContextExpander) Expand(id string) (domain.ContextPassage, bool) {
	item, ok := e.store.FindByID(id)
	if !ok {
		return domain.ContextPassage{}, false
	}

	if domain.IsAtomicAuthor(item.Author) {
		return domain.ContextPassage{
			Item:     item,
			FullText: item.Content,
			Context:  []domain.KnowledgeItem{item},
		}, true
	}

	siblings := e.store.ItemsBySource(item.Source, item.Author)

	pos := 0
	for i, sibling := range siblings {
		if sibling.ID == item.ID {
			pos = i
			break
		}
	}

	lo := pos - 1
	if lo < 0 {
		lo = 0
	}
	hi := pos + 1
	if hi > len(siblings)-1 {
		hi = len(siblings) - 1
	}

	window := siblings[lo : hi+1]
	parts := make([]string, len(window))
	for i, chunk := range window {
		parts[i] = chunk.Content
	}

	return domain.ContextPassage{
		Item:     item,
		FullText: strings.Join(parts, "\n\n"),
		Context:  window,
	}, true
}
