package chunker

import (
	"fmt"
	"strings"
	"testing"
)

func makeWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("word%04d", i)
	}
	return words
}

func TestWordChunkerCoverage(t *testing.T) {
	c := NewWordChunker(100, 20)
	words := makeWords(450)
	text := strings.Join(words, " ")

	chunks := c.Chunk(text)
	if len(chunks) == 0 {
		t.Fatal("expected at least one chunk")
	}

	// Every word of the input appears in some chunk.
	joined := strings.Join(chunks, " ")
	for _, w := range words {
		if !strings.Contains(joined, w) {
			t.Errorf("word %q not covered by any chunk", w)
		}
	}

	// Chunks preserve document order: each chunk starts step words
	// after the previous one.
	for i, chunk := range chunks {
		wantFirst := fmt.Sprintf("word%04d", i*80)
		if !strings.HasPrefix(chunk, wantFirst) {
			t.Errorf("chunk %d starts with %q, want prefix %q", i, chunk[:8], wantFirst)
		}
	}
}

func TestWordChunkerOverlap(t *testing.T) {
	c := NewWordChunker(100, 20)
	text := strings.Join(makeWords(250), " ")

	chunks := c.Chunk(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 0; i < len(chunks)-1; i++ {
		currWords := strings.Fields(chunks[i])
		nextWords := strings.Fields(chunks[i+1])

		// The last 20 words of a chunk reappear at the head of the next.
		tail := currWords[len(currWords)-20:]
		head := nextWords[:20]
		for j := range tail {
			if tail[j] != head[j] {
				t.Fatalf("chunk %d/%d overlap mismatch at %d: %q vs %q", i, i+1, j, tail[j], head[j])
			}
		}
	}
}

func TestWordChunkerShortTailDiscarded(t *testing.T) {
	c := NewWordChunker(10, 0)

	// 12 words: the second window is two short words, well under the
	// character floor, and must be dropped.
	words := append(makeWords(10), "ab", "cd")
	chunks := c.Chunk(strings.Join(words, " "))

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk after discarding short tail, got %d", len(chunks))
	}
	if strings.Contains(chunks[0], "ab cd") {
		t.Error("short tail should not be merged into the retained chunk")
	}
}

func TestWordChunkerEmptyInput(t *testing.T) {
	c := NewWordChunker(800, 100)

	if chunks := c.Chunk(""); len(chunks) != 0 {
		t.Errorf("expected no chunks for empty input, got %d", len(chunks))
	}
	if chunks := c.Chunk("   \n\t  "); len(chunks) != 0 {
		t.Errorf("expected no chunks for whitespace input, got %d", len(chunks))
	}
}

func TestWordChunkerSingleWindow(t *testing.T) {
	c := NewWordChunker(800, 100)
	text := strings.Join(makeWords(120), " ")

	chunks := c.Chunk(text)
	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Error("single-window chunk should equal the full input")
	}
}

func TestWordChunkerInvalidParams(t *testing.T) {
	// Overlap >= size is invalid and falls back to defaults.
	c := NewWordChunker(100, 100)
	text := strings.Join(makeWords(300), " ")

	chunks := c.Chunk(text)
	if len(chunks) == 0 {
		t.Fatal("expected chunker to recover from invalid overlap")
	}

	// Must terminate and cover the input.
	joined := strings.Join(chunks, " ")
	if !strings.Contains(joined, "word0299") {
		t.Error("last word not covered")
	}
}

func TestWordChunkerDeterministic(t *testing.T) {
	c := NewWordChunker(50, 10)
	text := strings.Join(makeWords(180), " ")

	first := c.Chunk(text)
	second := c.Chunk(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}
