package driven

import "context"

// EnsurePolicy selects how Ensure treats an index that already exists.
type EnsurePolicy int

const (
	// CreateIfAbsent creates the index only when it does not exist,
	// preserving any vectors already stored.
	CreateIfAbsent EnsurePolicy = iota

	// DeleteAndRecreate deletes an existing index and creates a fresh
	// one. Destructive; used to force a clean rebuild. Implementations
	// must confirm deletion completed before recreating to avoid a
	// name-collision race.
	DeleteAndRecreate
)

// String returns the policy name for logs.
func (p EnsurePolicy) String() string {
	if p == DeleteAndRecreate {
		return "delete-and-recreate"
	}
	return "create-if-absent"
}

// VectorRecord is one chunk vector to upsert.
type VectorRecord struct {
	// ID is the stable chunk identifier (cv_<id>_chunk_<n>). Upserts
	// are idempotent per ID.
	ID string

	// Values is the embedding, index-dimension floats.
	Values []float32

	// ResumeID is stored as the cv_no metadata field.
	ResumeID int
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ID is the matched chunk identifier.
	ID string

	// ResumeID is the originating resumé, recovered from metadata.
	ResumeID int

	// Score is the cosine similarity score.
	Score float64
}

// IndexStats describes the current state of the index.
type IndexStats struct {
	VectorCount int
	Dimension   int
}

// VectorIndex is the external vector collection storing chunk
// embeddings for similarity search.
type VectorIndex interface {
	// Ensure guarantees a matching index exists, per the given policy.
	Ensure(ctx context.Context, policy EnsurePolicy) error

	// Upsert writes chunk vectors keyed by their stable IDs.
	Upsert(ctx context.Context, records []VectorRecord) error

	// Query returns the k nearest chunks to the query vector, ranked
	// by descending similarity.
	Query(ctx context.Context, vector []float32, k int) ([]VectorHit, error)

	// Stats returns the current vector count for observability.
	Stats(ctx context.Context) (IndexStats, error)

	// Close releases resources.
	Close() error
}
