package cli

import (
	"fmt"

	"github.com/custodia-labs/screena-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/screena-cli/internal/adapters/driven/reasoning/maestro"
	"github.com/custodia-labs/screena-cli/internal/adapters/driven/vector/pinecone"
	"github.com/custodia-labs/screena-cli/internal/chunker"
	"github.com/custodia-labs/screena-cli/internal/config"
	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driving"
	"github.com/custodia-labs/screena-cli/internal/core/services"
	"github.com/custodia-labs/screena-cli/internal/extractor/pdf"
	"github.com/custodia-labs/screena-cli/internal/resumes"
)

// Test seams: commands use these when set instead of building the real
// service graph.
var (
	indexerOverride  driving.Indexer
	screenerOverride driving.Screener
	vectorOverride   driven.VectorIndex
)

// loadConfig reads the config file selected by --config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// buildVectorIndex constructs the Pinecone adapter.
func buildVectorIndex(cfg *config.Config) (driven.VectorIndex, error) {
	if vectorOverride != nil {
		return vectorOverride, nil
	}
	return pinecone.NewIndex(pinecone.Config{
		APIKey:    cfg.Index.APIKey,
		Name:      cfg.Index.Name,
		Dimension: config.Dimension,
		Cloud:     cfg.Index.Cloud,
		Region:    cfg.Index.Region,
	})
}

// buildSource constructs the resumé filesystem source.
func buildSource(cfg *config.Config) driven.ResumeSource {
	return resumes.NewSource(cfg.Resumes.Dir, cfg.Resumes.Count, pdf.New())
}

// buildIndexer wires the indexing pipeline.
func buildIndexer() (driving.Indexer, error) {
	if indexerOverride != nil {
		return indexerOverride, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	embedder, err := ai.NewEmbeddingService(cfg)
	if err != nil {
		return nil, err
	}
	index, err := buildVectorIndex(cfg)
	if err != nil {
		return nil, err
	}

	ch := chunker.New(
		chunker.WithChunkSize(cfg.Chunking.Size),
		chunker.WithOverlap(cfg.Chunking.Overlap),
	)
	return services.NewIndexerService(buildSource(cfg), ch, embedder, index), nil
}

// buildScreener wires the screening pipeline.
func buildScreener() (driving.Screener, error) {
	if screenerOverride != nil {
		return screenerOverride, nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	embedder, err := ai.NewEmbeddingService(cfg)
	if err != nil {
		return nil, err
	}
	index, err := buildVectorIndex(cfg)
	if err != nil {
		return nil, err
	}
	reasoner, err := maestro.NewClient(maestro.Config{
		APIKey:  cfg.Reasoning.APIKey,
		BaseURL: cfg.Reasoning.BaseURL,
	})
	if err != nil {
		return nil, err
	}

	svc := services.NewScreeningService(buildSource(cfg), embedder, index, reasoner)
	svc.SetTopK(cfg.Retrieval.TopK)
	svc.SetBudget(domain.Budget(cfg.Reasoning.Budget))
	return svc, nil
}
