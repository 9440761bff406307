package port

import (
	"context"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
)

// KnowledgeStore holds an immutable snapshot of knowledge items in
// memory. Load is idempotent and safe to call from concurrent call
// sites; a failed load leaves the store in an empty but valid state,
// so callers treat zero results as legitimate rather than an error.
type KnowledgeStore interface {
	// Load reads the snapshot on first call; later calls are no-ops.
	Load(ctx context.Context)

	// FindByID returns the item with the given id, if present.
	FindByID(id string) (domain.KnowledgeItem, bool)

	// ItemsBySource returns all items sharing the given source and
	// author, ordered by chunk index ascending.
	ItemsBySource(source, author string) []domain.KnowledgeItem

	// Items returns all items in stored order.
	Items() []domain.KnowledgeItem

	// Count returns the number of items.
	Count() int

	// Metadata returns the snapshot metadata.
	Metadata() domain.Metadata
}
