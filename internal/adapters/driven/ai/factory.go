// Package ai provides factory functions for creating the embedding
// service from configuration.
package ai

import (
	"fmt"

	ollamaembed "github.com/custodia-labs/screena-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/screena-cli/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/screena-cli/internal/config"
	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
)

// NewEmbeddingService creates the embedding service selected by
// cfg.Embedding.Provider. The indexing and screening pipelines must
// share one instance so chunks and queries live in the same embedding
// space.
func NewEmbeddingService(cfg *config.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "", "openai":
		svc, err := openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:            cfg.Embedding.APIKey,
			BaseURL:           cfg.Embedding.BaseURL,
			Model:             cfg.Embedding.Model,
			Dimensions:        cfg.Embedding.Dimensions,
			RequestsPerSecond: cfg.Embedding.RequestsPerSecond,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
		}
		return svc, nil

	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q", domain.ErrEmbeddingUnavailable, cfg.Embedding.Provider)
	}
}
