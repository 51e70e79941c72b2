package driving

import "context"

// IndexOptions configures one indexing run.
type IndexOptions struct {
	// Recreate deletes and recreates the index before upserting,
	// forcing a clean rebuild. The default preserves existing vectors.
	Recreate bool
}

// IndexReport summarises what an indexing run did.
type IndexReport struct {
	// Indexed is the number of resumés whose chunks were upserted.
	Indexed int

	// Skipped is the number of resumé slots that were missing, empty
	// or unreadable.
	Skipped int

	// Chunks is the total number of chunk vectors upserted.
	Chunks int
}

// Indexer runs the indexing pipeline: load resumés, chunk, embed and
// upsert into the vector index. Resumés are processed strictly
// sequentially; a missing or empty file is skipped, an external
// service failure aborts the run.
type Indexer interface {
	BuildIndex(ctx context.Context, opts IndexOptions) (IndexReport, error)
}
