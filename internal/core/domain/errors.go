package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a resumé file does not exist at its
	// conventional path. Non-fatal during indexing: the file is
	// skipped and the batch continues.
	ErrNotFound = errors.New("not found")

	// ErrEmptyDocument indicates a resumé file exists but yielded no
	// text. Skipped like a missing file.
	ErrEmptyDocument = errors.New("empty document")

	// ErrEmptyQuery indicates a screening request with no job
	// description. Rejected before any pipeline work begins.
	ErrEmptyQuery = errors.New("empty query")

	// ErrInvalidInput indicates malformed or out-of-range input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexUnavailable indicates the vector index could not be
	// reached or provisioned. Fatal for the current operation.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured or unreachable.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrAnalysisFailed indicates the reasoning service reported a
	// failed run or could not be reached. Fatal for the current query
	// and surfaced to the caller.
	ErrAnalysisFailed = errors.New("analysis failed")
)
