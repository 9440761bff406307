package usecase

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/embedding"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/retriever"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/store"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

func sessionFixture(t *testing.T) *Session {
	t.Helper()

	items := essayChunks("founder-mode.md", "Founder Mode", 3)
	for i := range items {
		items[i].Content += " leadership matters"
		items[i].Topics = []string{"leadership", "startups"}
	}
	items = append(items, domain.KnowledgeItem{
		ID:          "passage_navalmanack.csv:0_0",
		Title:       "Passage 1",
		Author:      domain.AuthorNaval,
		Type:        domain.TypePassage,
		Content:     "Seek wealth, not status.",
		Topics:      []string{"wealth"},
		Source:      "navalmanack.csv:0",
		ChunkIndex:  0,
		TotalChunks: 1,
	})

	st := loadedStore(t, items)
	return NewSession(st, retriever.NewRanker(st, nil))
}

func TestSessionSearch(t *testing.T) {
	s := sessionFixture(t)

	resp := s.Search(context.Background(), "leadership", port.SearchOptions{})

	if resp.Query != "leadership" {
		t.Errorf("query echoed wrong: %q", resp.Query)
	}
	if resp.TotalFound != 3 {
		t.Errorf("expected totalFound=3, got %d", resp.TotalFound)
	}
	if len(resp.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(resp.Items))
	}
	if resp.SearchTime < 0 {
		t.Errorf("negative search time: %v", resp.SearchTime)
	}
	for _, res := range resp.Items {
		if res.Item.Author != domain.AuthorPaulGraham {
			t.Errorf("unexpected author %s", res.Item.Author)
		}
	}
}

func TestSessionSearchDefaults(t *testing.T) {
	s := sessionFixture(t)

	// Zero options take the documented defaults rather than returning
	// everything or nothing.
	resp := s.Search(context.Background(), "leadership", port.SearchOptions{Limit: 0})
	if len(resp.Items) > DefaultLimit {
		t.Errorf("default limit not applied: %d items", len(resp.Items))
	}
}

func TestSessionLoadMore(t *testing.T) {
	s := sessionFixture(t)

	first := s.Search(context.Background(), "leadership", port.SearchOptions{Limit: 1})
	if len(first.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(first.Items))
	}

	more := s.Search(context.Background(), "leadership", port.SearchOptions{Limit: 3})
	if len(more.Items) != 3 {
		t.Fatalf("expected 3 items on load-more, got %d", len(more.Items))
	}
	if more.TotalFound != first.TotalFound {
		t.Errorf("totalFound changed across load-more: %d vs %d", first.TotalFound, more.TotalFound)
	}
	if more.Items[0].Item.ID != first.Items[0].Item.ID {
		t.Error("top result changed across load-more")
	}
}

func TestSessionRepeatedSearchIdentical(t *testing.T) {
	s := sessionFixture(t)
	opts := port.SearchOptions{Limit: 10}

	first := s.Search(context.Background(), "founder leadership", opts)
	second := s.Search(context.Background(), "founder leadership", opts)

	if len(first.Items) != len(second.Items) || first.TotalFound != second.TotalFound {
		t.Fatal("repeated identical queries must return identical result sets")
	}
	for i := range first.Items {
		if first.Items[i].Item.ID != second.Items[i].Item.ID {
			t.Errorf("position %d differs between repeated searches", i)
		}
	}
}

func TestSessionEmptyStore(t *testing.T) {
	st := store.NewSnapshotStore(filepath.Join(t.TempDir(), "missing.json"))
	s := NewSession(st, retriever.NewRanker(st, nil))

	resp := s.Search(context.Background(), "anything", port.SearchOptions{})
	if len(resp.Items) != 0 || resp.TotalFound != 0 {
		t.Errorf("empty store must return zero results, got %d/%d", len(resp.Items), resp.TotalFound)
	}

	if _, ok := s.FullTextWithContext(context.Background(), "any-id"); ok {
		t.Error("empty store must resolve no ids")
	}

	stats := s.Stats(context.Background())
	if stats.TotalItems != 0 {
		t.Errorf("empty store stats must be zero, got %d", stats.TotalItems)
	}
}

func TestSessionStats(t *testing.T) {
	s := sessionFixture(t)

	stats := s.Stats(context.Background())

	if stats.TotalItems != 4 {
		t.Errorf("expected 4 items, got %d", stats.TotalItems)
	}
	if stats.ByAuthor[domain.AuthorPaulGraham] != 3 {
		t.Errorf("expected 3 Paul Graham items, got %d", stats.ByAuthor[domain.AuthorPaulGraham])
	}
	if stats.ByAuthor[domain.AuthorNaval] != 1 {
		t.Errorf("expected 1 Naval item, got %d", stats.ByAuthor[domain.AuthorNaval])
	}
	if stats.ByType[domain.TypeEssay] != 3 || stats.ByType[domain.TypePassage] != 1 {
		t.Errorf("unexpected type counts: %v", stats.ByType)
	}
	if stats.ByTopic["leadership"] != 3 {
		t.Errorf("expected 3 leadership items, got %d", stats.ByTopic["leadership"])
	}
	if stats.Embedded != 0 {
		t.Errorf("expected no embedded items, got %d", stats.Embedded)
	}
}

func TestSessionVectorSearch(t *testing.T) {
	embedder := embedding.NewMockEmbedder(8)

	items := essayChunks("founder-mode.md", "Founder Mode", 3)
	texts := make([]string, len(items))
	for i := range items {
		texts[i] = items[i].Content
	}
	vectors, err := embedder.EmbedBatch(context.Background(), texts)
	if err != nil {
		t.Fatal(err)
	}
	for i := range items {
		items[i].Embedding = vectors[i]
	}

	st := loadedStore(t, items)
	s := NewSession(st, retriever.NewRanker(st, embedder))

	// Searching for a chunk's own text must retain it: the query vector
	// equals its stored embedding, so similarity is 1.
	resp := s.Search(context.Background(), items[1].Content, port.SearchOptions{Limit: 10})
	if resp.TotalFound == 0 {
		t.Fatal("vector search retained nothing")
	}
	found := false
	for _, res := range resp.Items {
		if res.Item.ID == items[1].ID {
			found = true
			if res.Similarity < 0.999 {
				t.Errorf("expected similarity ~1 for the exact chunk, got %f", res.Similarity)
			}
		}
	}
	if !found {
		t.Error("exact chunk missing from vector results")
	}

	stats := s.Stats(context.Background())
	if stats.Embedded != len(items) {
		t.Errorf("expected %d embedded items, got %d", len(items), stats.Embedded)
	}
}

func TestSessionFullTextWithContext(t *testing.T) {
	s := sessionFixture(t)

	passage, ok := s.FullTextWithContext(context.Background(), "essay_founder-mode.md_0")
	if !ok {
		t.Fatal("expected id to resolve")
	}
	if len(passage.Context) != 2 {
		t.Errorf("expected 2 context chunks at document head, got %d", len(passage.Context))
	}
}
