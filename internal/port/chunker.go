package port

// Chunker splits cleaned document text into an ordered sequence of
// retrievable chunk strings.
type Chunker interface {
	Chunk(text string) []string
}
