package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/lbliii/milodocs/internal/docindex"
	"github.com/lbliii/milodocs/internal/logger"
)

var defaultSeparators = []string{"\n\n", "\n", " ", ""}

func DefaultOptions() Options {
	return Options{
		ChunkSize:    1000,
		ChunkOverlap: 0,
		Separators:   defaultSeparators,
	}
}

// splits every document and tags the pieces with the page metadata
func ChunkDocuments(docs []docindex.Document, opts Options) []Chunk {
	var chunks []Chunk

	for _, doc := range docs {
		for i, text := range Split(doc.Body, opts) {
			chunks = append(chunks, Chunk{
				Title:       doc.Title,
				RelURI:      doc.RelURI,
				Description: doc.Description,
				ProductPath: doc.ProductPath,
				Content:     text,
				Index:       i,
			})
		}
	}

	logger.Debug("chunked documents", "documents", len(docs), "chunks", len(chunks))

	return chunks
}

// Split breaks text into pieces of at most opts.ChunkSize characters. It
// splits on the first separator present in the text, merges neighbouring
// pieces back up to the size limit and recurses with the finer separators
// into pieces that are still too long. Separators stay attached to the
// start of the piece that follows them; chunks are trimmed of surrounding
// whitespace and empty chunks are dropped.
func Split(text string, opts Options) []string {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultOptions().ChunkSize
	}

	if opts.ChunkOverlap < 0 || opts.ChunkOverlap >= opts.ChunkSize {
		opts.ChunkOverlap = 0
	}

	if len(opts.Separators) == 0 {
		opts.Separators = defaultSeparators
	}

	return splitRecursive(text, opts.Separators, opts)
}

func splitRecursive(text string, separators []string, opts Options) []string {
	separator := separators[len(separators)-1]
	var finer []string

	for i, s := range separators {
		if s == "" {
			separator = s
			break
		}
		if strings.Contains(text, s) {
			separator = s
			finer = separators[i+1:]
			break
		}
	}

	var chunks []string
	var pending []string

	for _, piece := range splitKeepingSeparator(text, separator) {
		if length(piece) < opts.ChunkSize {
			pending = append(pending, piece)
			continue
		}

		if len(pending) > 0 {
			chunks = append(chunks, merge(pending, opts)...)
			pending = nil
		}

		if len(finer) == 0 {
			chunks = append(chunks, piece)
			continue
		}

		chunks = append(chunks, splitRecursive(piece, finer, opts)...)
	}

	if len(pending) > 0 {
		chunks = append(chunks, merge(pending, opts)...)
	}

	return chunks
}

// splits text on sep, prefixing every piece but the first with sep. an
// empty separator splits into characters.
func splitKeepingSeparator(text, sep string) []string {
	if sep == "" {
		pieces := make([]string, 0, utf8.RuneCountInString(text))
		for _, r := range text {
			pieces = append(pieces, string(r))
		}
		return pieces
	}

	parts := strings.Split(text, sep)
	pieces := make([]string, 0, len(parts))

	for i, p := range parts {
		if i > 0 {
			p = sep + p
		}
		if p != "" {
			pieces = append(pieces, p)
		}
	}

	return pieces
}

// joins consecutive pieces while they fit in ChunkSize, keeping up to
// ChunkOverlap characters of the previous chunk at the start of the next
func merge(pieces []string, opts Options) []string {
	var chunks []string
	var current []string
	total := 0

	for _, p := range pieces {
		n := length(p)

		if total+n > opts.ChunkSize && len(current) > 0 {
			if chunk := strings.TrimSpace(strings.Join(current, "")); chunk != "" {
				chunks = append(chunks, chunk)
			}

			for len(current) > 0 && (total > opts.ChunkOverlap || total+n > opts.ChunkSize) {
				total -= length(current[0])
				current = current[1:]
			}
		}

		current = append(current, p)
		total += n
	}

	if chunk := strings.TrimSpace(strings.Join(current, "")); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

func length(s string) int {
	return utf8.RuneCountInString(s)
}
