package domain

import "fmt"

// Resume represents one candidate resumé on disk.
type Resume struct {
	// ID is the sequential identifier embedded in the filename,
	// starting at 1.
	ID int

	// Path is the location of the PDF file.
	Path string

	// Text is the full extracted text, page texts joined with newlines
	// and surrounding whitespace trimmed.
	Text string
}

// Chunk is a bounded, possibly overlapping slice of a resumé's text.
// It is the unit of embedding and indexing. Chunks are created during
// indexing and never mutated afterwards.
type Chunk struct {
	// ResumeID links back to the owning resumé.
	ResumeID int

	// Position is the ordinal position within the resumé, starting at 0.
	Position int

	// Content is the text content of this chunk.
	Content string
}

// VectorID returns the stable identifier used as the vector key in the
// index. Re-indexing the same resumé produces the same IDs, so upserts
// overwrite rather than duplicate.
func (c Chunk) VectorID() string {
	return fmt.Sprintf("cv_%d_chunk_%d", c.ResumeID, c.Position)
}
