package driven

import "context"

// EmbeddingService generates vector embeddings from text.
//
// The same service instance must embed chunks at indexing time and
// queries at screening time: retrieval is only meaningful inside one
// embedding space.
//
// Implementations may include:
//   - OpenAI-compatible APIs (text-embedding-3-*)
//   - Ollama (bge-m3, nomic-embed-text)
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts, one vector
	// per input in the same order. Any transport or model error fails
	// the whole batch; there is no partial result.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the embedding vector size. It must match the
	// vector index dimension.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight
	// request that runs no inference.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
