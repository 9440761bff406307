package chunker

import "strings"

const (
	// DefaultChunkWords is the target chunk size in words.
	DefaultChunkWords = 800
	// DefaultOverlapWords is the overlap between successive chunks.
	DefaultOverlapWords = 100
	// MinChunkChars filters near-empty trailing fragments: a chunk
	// whose trimmed text is this long or shorter is discarded.
	MinChunkChars = 50
	// MinDocumentChars is the floor below which a cleaned document is
	// skipped entirely.
	MinDocumentChars = 100
)

// WordChunker splits text into overlapping fixed-size word windows.
type WordChunker struct {
	chunkWords   int
	overlapWords int
}

// NewWordChunker creates a word-window chunker. Invalid parameters
// (non-positive size, overlap not smaller than size) fall back to the
// defaults.
func NewWordChunker(chunkWords, overlapWords int) *WordChunker {
	if chunkWords <= 0 {
		chunkWords = DefaultChunkWords
	}
	if overlapWords < 0 || overlapWords >= chunkWords {
		overlapWords = DefaultOverlapWords
		if overlapWords >= chunkWords {
			overlapWords = chunkWords / 8
		}
	}
	return &WordChunker{
		chunkWords:   chunkWords,
		overlapWords: overlapWords,
	}
}

// Chunk splits text on whitespace and emits successive windows of
// chunkWords words, stepping by chunkWords-overlapWords, in original
// document order. Windows whose trimmed text is at most MinChunkChars
// characters are discarded.
func (c *WordChunker) Chunk(text string) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	step := c.chunkWords - c.overlapWords
	var chunks []string

	for start := 0; start < len(words); start += step {
		end := start + c.chunkWords
		if end > len(words) {
			end = len(words)
		}

		chunk := strings.TrimSpace(strings.Join(words[start:end], " "))
		if len(chunk) > MinChunkChars {
			chunks = append(chunks, chunk)
		}

		if end == len(words) {
			break
		}
	}

	return chunks
}
