package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/phuslu/log"
	"github.com/schollz/progressbar/v3"

	"github.com/nonexistent9/venture-scout-bot-sub000/config"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/fs"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/store"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

// Builder is the offline batch pipeline: it walks source documents,
// chunks and tags them, optionally embeds them, and writes the
// snapshot artifact the search session loads at runtime.
type Builder struct {
	cfg      *config.Config
	walker   *fs.Walker
	chunker  port.Chunker
	embedder port.Embedder     // nil disables the embedding pass
	cache    *store.EmbedCache // nil disables caching
	progress bool
}

// NewBuilder creates a builder. embedder and cache may be nil.
func NewBuilder(cfg *config.Config, chk port.Chunker, embedder port.Embedder, cache *store.EmbedCache) *Builder {
	return &Builder{
		cfg:      cfg,
		walker:   fs.NewWalker(cfg.Sources.Includes, cfg.Sources.Excludes),
		chunker:  chk,
		embedder: embedder,
		cache:    cache,
	}
}

// ShowProgress enables a progress bar during the embedding pass.
func (b *Builder) ShowProgress(on bool) {
	b.progress = on
}

// BuildResult summarizes one build run.
type BuildResult struct {
	Documents int
	Skipped   int
	Items     int
	Embedded  int
	Errors    []string
}

// Build scans root for source documents, produces knowledge items and
// writes the snapshot to outPath atomically.
func (b *Builder) Build(ctx context.Context, root, outPath string) (*BuildResult, error) {
	result := &BuildResult{}

	files, err := b.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk sources: %w", err)
	}

	var items []domain.KnowledgeItem
	for _, file := range files {
		switch strings.ToLower(filepath.Ext(file.Name)) {
		case ".md":
			essay, kept, err := essayItems(b.chunker, file.Path, file.Name, b.cfg.Sources.EssayAuthor)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Name, err))
				continue
			}
			if !kept {
				result.Skipped++
				continue
			}
			items = append(items, essay...)
			result.Documents++
		case ".csv":
			rows, err := tableItems(file.Path, file.Name, b.cfg.Sources.TableAuthor)
			if err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", file.Name, err))
				continue
			}
			items = append(items, rows...)
			result.Documents++
		default:
			result.Skipped++
		}
	}

	if b.embedder != nil {
		result.Embedded = b.embedAll(ctx, items)
	}
	result.Items = len(items)

	db := domain.Database{
		Metadata: domain.Metadata{
			GeneratedAt: time.Now().UTC(),
			TotalItems:  len(items),
			ChunkSize:   b.cfg.Chunking.ChunkWords,
			Overlap:     b.cfg.Chunking.OverlapWords,
		},
		Items: items,
	}
	if b.embedder != nil {
		db.Metadata.EmbeddingModel = b.embedder.ModelName()
	}

	if err := writeSnapshot(db, outPath); err != nil {
		return nil, err
	}

	return result, nil
}

// embedAll fills in embeddings for all items, consulting the cache
// first and calling the embedding endpoint in fixed-size batches with
// a pacing delay in between. Failures are logged per batch and leave
// those items keyword-searchable.
func (b *Builder) embedAll(ctx context.Context, items []domain.KnowledgeItem) int {
	model := b.embedder.ModelName()

	var pending []int
	for i := range items {
		if b.cache != nil {
			if vec, ok := b.cache.Get(model, items[i].Content); ok {
				items[i].Embedding = vec
				continue
			}
		}
		pending = append(pending, i)
	}

	batchSize := b.cfg.Embedding.BatchSize
	if batchSize <= 0 {
		batchSize = 100
	}
	delay := time.Duration(b.cfg.Embedding.BatchDelayMS) * time.Millisecond

	var bar *progressbar.ProgressBar
	if b.progress && len(pending) > 0 {
		bar = progressbar.Default(int64(len(pending)), "embedding")
	}

	embedded := len(items) - len(pending)
	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		texts := make([]string, len(batch))
		for i, idx := range batch {
			texts[i] = items[idx].Content
		}

		vectors, err := b.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			log.Warn().Err(err).Int("batch_start", start).Msg("embedding batch failed, items remain keyword-only")
			continue
		}

		for i, idx := range batch {
			if i >= len(vectors) || len(vectors[i]) == 0 {
				continue
			}
			items[idx].Embedding = vectors[i]
			embedded++
			if b.cache != nil {
				if err := b.cache.Put(model, items[idx].Content, vectors[i]); err != nil {
					log.Warn().Err(err).Msg("failed to cache embedding")
				}
			}
		}

		if bar != nil {
			bar.Add(len(batch))
		}

		if end < len(pending) && delay > 0 {
			select {
			case <-ctx.Done():
				return embedded
			case <-time.After(delay):
			}
		}
	}

	return embedded
}

// writeSnapshot serializes the database to path via a temp file and
// rename, so readers never observe a partial artifact.
func writeSnapshot(db domain.Database, path string) error {
	data, err := json.MarshalIndent(db, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create snapshot directory: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".knowledge-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to move snapshot into place: %w", err)
	}
	return nil
}
