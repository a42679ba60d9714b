package chunker

type Options struct {
	ChunkSize    int      // maximum chunk length in characters
	ChunkOverlap int      // characters carried over from the previous chunk
	Separators   []string // tried in order, coarsest first
}

// one piece of a page, ready to be embedded
type Chunk struct {
	Title       string
	RelURI      string
	Description string
	ProductPath string
	Content     string
	Index       int // position within the page
}
