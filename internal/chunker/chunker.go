// Package chunker splits resumé text into overlapping fixed-size
// segments for embedding.
package chunker

import (
	"strings"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters
// shared between consecutive chunks.
const DefaultChunkOverlap = 200

// Chunker splits text into chunks of at most chunkSize characters,
// with overlap characters shared between consecutive chunks. Splits
// prefer paragraph, sentence and word boundaries before falling back
// to hard character cuts. Output is deterministic for fixed input and
// configuration.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured maximum chunk length.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap length.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits a resumé's text into ordered chunks tagged with the
// owning resumé's ID. Empty text produces no chunks.
func (c *Chunker) Chunk(resume *domain.Resume) []domain.Chunk {
	segments := c.Split(resume.Text)
	if len(segments) == 0 {
		return nil
	}

	chunks := make([]domain.Chunk, len(segments))
	for i, content := range segments {
		chunks[i] = domain.Chunk{
			ResumeID: resume.ID,
			Position: i,
			Content:  content,
		}
	}
	return chunks
}

// Split divides text into segments of at most chunkSize characters.
// Each segment after the first starts overlap characters before the
// end of its predecessor, so consecutive segments share exactly
// overlap characters (less only at the final boundary).
func (c *Chunker) Split(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var segments []string
	start := 0
	for start < len(text) {
		if start+c.chunkSize >= len(text) {
			segments = append(segments, text[start:])
			break
		}

		end := c.cutPoint(text, start)
		segments = append(segments, text[start:end])

		next := end - c.overlap
		if next <= start {
			// Overlap would stall the scan; advance without it.
			next = end
		}
		start = next
	}
	return segments
}

// cutPoint returns the end offset for the chunk starting at start.
// It prefers, in order, the last paragraph break, sentence end or word
// break in the second half of the window, and hard-cuts at the size
// limit otherwise.
func (c *Chunker) cutPoint(text string, start int) int {
	limit := start + c.chunkSize
	window := text[start:limit]
	floor := c.chunkSize / 2

	if i := strings.LastIndex(window, "\n\n"); i >= floor {
		return start + i + 2
	}
	for _, sep := range []string{". ", "! ", "? ", "\n"} {
		if i := strings.LastIndex(window, sep); i >= floor {
			return start + i + len(sep)
		}
	}
	if i := strings.LastIndexByte(window, ' '); i >= floor {
		return start + i + 1
	}
	return limit
}
