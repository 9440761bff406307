package usecase

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/chunker"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/adapter/fs"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/domain"
	"github.com/nonexistent9/venture-scout-bot-sub000/internal/port"
)

// essayItems converts a Markdown essay into chunked knowledge items.
// The second return value is false when the document is too short to
// be knowledge and was skipped.
func essayItems(chk port.Chunker, path, name, author string) ([]domain.KnowledgeItem, bool, error) {
	raw, err := fs.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read essay: %w", err)
	}

	cleaned := chunker.CleanMarkdown(raw)
	if len(cleaned) < chunker.MinDocumentChars {
		return nil, false, nil
	}

	title := essayTitle(raw, name)
	chunks := chk.Chunk(cleaned)

	items := make([]domain.KnowledgeItem, 0, len(chunks))
	for i, text := range chunks {
		items = append(items, domain.KnowledgeItem{
			ID:          fmt.Sprintf("%s_%s_%d", domain.TypeEssay, name, i),
			Title:       title,
			Author:      author,
			Type:        domain.TypeEssay,
			Content:     text,
			Topics:      chunker.TagTopics(text, title),
			Source:      name,
			ChunkIndex:  i,
			TotalChunks: len(chunks),
		})
	}
	return items, true, nil
}

// essayTitle takes the first ATX heading of the raw Markdown, falling
// back to the filename without extension.
func essayTitle(raw, name string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// tableItems converts a CSV table into single-chunk passage or clip
// items, one per row. The table must carry a header with a "content"
// column; "title" and "author" columns are optional. Each row is its
// own atomic source document, so chunk index and total are trivially
// 0 and 1.
func tableItems(path, name, defaultAuthor string) ([]domain.KnowledgeItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse table: %w", err)
	}
	if len(records) < 2 {
		return nil, nil // header only, or empty
	}

	contentCol, titleCol, authorCol := -1, -1, -1
	for i, column := range records[0] {
		switch strings.ToLower(strings.TrimSpace(column)) {
		case "content", "text":
			contentCol = i
		case "title":
			titleCol = i
		case "author":
			authorCol = i
		}
	}
	if contentCol < 0 {
		return nil, fmt.Errorf("table %s has no content column", name)
	}

	itemType := domain.TypePassage
	if strings.Contains(strings.ToLower(name), "clip") {
		itemType = domain.TypeClip
	}
	label := "Passage"
	if itemType == domain.TypeClip {
		label = "Clip"
	}

	var items []domain.KnowledgeItem
	for rowIdx, row := range records[1:] {
		if contentCol >= len(row) {
			continue
		}
		content := strings.TrimSpace(row[contentCol])
		if content == "" {
			continue
		}

		title := fmt.Sprintf("%s %d", label, rowIdx+1)
		if titleCol >= 0 && titleCol < len(row) && strings.TrimSpace(row[titleCol]) != "" {
			title = strings.TrimSpace(row[titleCol])
		}

		author := defaultAuthor
		if authorCol >= 0 && authorCol < len(row) && strings.TrimSpace(row[authorCol]) != "" {
			author = strings.TrimSpace(row[authorCol])
		}

		source := fmt.Sprintf("%s:%d", name, rowIdx)
		items = append(items, domain.KnowledgeItem{
			ID:          fmt.Sprintf("%s_%s_0", itemType, source),
			Title:       title,
			Author:      author,
			Type:        itemType,
			Content:     content,
			Topics:      chunker.TagTopics(content, title),
			Source:      source,
			ChunkIndex:  0,
			TotalChunks: 1,
		})
	}

	return items, nil
}
