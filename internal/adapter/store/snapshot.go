package store

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/phuslu/log"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
)

// SnapshotStore loads a pre-built knowledge snapshot once and serves
// read-only lookups for the process lifetime. A failed load degrades
// to an empty, valid, queryable store; callers treat zero results as a
// legitimate state.
type SnapshotStore struct {
	path string
	once sync.Once

	db   domain.Database
	byID map[string]int
}

// NewSnapshotStore creates a store that will read the snapshot at path
// on first Load.
func NewSnapshotStore(path string) *SnapshotStore {
	return &SnapshotStore{
		path: path,
		byID: map[string]int{},
	}
}

// Load reads the snapshot artifact on first call; subsequent and
// concurrent callers share the same one-shot load. Read or parse
// failures are logged and leave the store empty rather than
// propagating.
func (s *SnapshotStore) Load(_ context.Context) {
	s.once.Do(func() {
		data, err := os.ReadFile(s.path)
		if err != nil {
			log.Warn().Err(err).Str("path", s.path).Msg("knowledge snapshot unavailable, starting empty")
			return
		}

		var db domain.Database
		if err := json.Unmarshal(data, &db); err != nil {
			log.Warn().Err(err).Str("path", s.path).Msg("knowledge snapshot malformed, starting empty")
			return
		}

		s.db = db
		s.byID = make(map[string]int, len(db.Items))
		for i, item := range db.Items {
			s.byID[item.ID] = i
		}
	})
}

// FindByID returns the item with the given id, if present.
func (s *SnapshotStore) FindByID(id string) (domain.KnowledgeItem, bool) {
	i, ok := s.byID[id]
	if !ok {
		return domain.KnowledgeItem{}, false
	}
	return s.db.Items[i], true
}

// ItemsBySource returns all items sharing the given source and author,
// ordered by chunk index ascending.
func (s *SnapshotStore) ItemsBySource(source, author string) []domain.KnowledgeItem {
	var items []domain.KnowledgeItem
	for _, item := range s.db.Items {
		if item.Source == source && item.Author == author {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ChunkIndex < items[j].ChunkIndex
	})
	return items
}

// Items returns all items in stored order.
func (s *SnapshotStore) Items() []domain.KnowledgeItem {
	return s.db.Items
}

// Count returns the number of loaded items.
func (s *SnapshotStore) Count() int {
	return len(s.db.Items)
}

// Metadata returns the snapshot metadata.
func (s *SnapshotStore) Metadata() domain.Metadata {
	return s.db.Metadata
}
