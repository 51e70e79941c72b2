package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/screena-cli/internal/chunker"
	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driving"
	"github.com/custodia-labs/screena-cli/internal/logger"
)

// Ensure IndexerService implements the interface.
var _ driving.Indexer = (*IndexerService)(nil)

// IndexerService builds the vector index from the resumé files.
type IndexerService struct {
	source   driven.ResumeSource
	chunker  *chunker.Chunker
	embedder driven.EmbeddingService
	index    driven.VectorIndex
}

// NewIndexerService creates a new indexing pipeline.
func NewIndexerService(
	source driven.ResumeSource,
	ch *chunker.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
) *IndexerService {
	if ch == nil {
		ch = chunker.New()
	}
	return &IndexerService{
		source:   source,
		chunker:  ch,
		embedder: embedder,
		index:    index,
	}
}

// BuildIndex runs the indexing pipeline. Resumés are processed in ID
// order; a missing, empty or unextractable file is logged and skipped
// without aborting the batch. Embedding or index failures abort the
// run: there are no partial-result semantics.
func (s *IndexerService) BuildIndex(ctx context.Context, opts driving.IndexOptions) (driving.IndexReport, error) {
	var report driving.IndexReport

	policy := driven.CreateIfAbsent
	if opts.Recreate {
		policy = driven.DeleteAndRecreate
	}

	logger.Section("Indexing")
	logger.Info("Ensuring index (policy %s)", policy)
	if err := s.index.Ensure(ctx, policy); err != nil {
		return report, fmt.Errorf("ensure index: %w", err)
	}

	if logger.IsVerbose() {
		if stats, err := s.index.Stats(ctx); err == nil {
			logger.Debug("Index before upsert: %d vectors", stats.VectorCount)
		}
	}

	for id := 1; id <= s.source.Count(); id++ {
		resume, err := s.source.Load(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrEmptyDocument) {
				logger.Warn("Skipping resume %d: %v", id, err)
			} else {
				logger.Warn("Skipping resume %d: extraction failed: %v", id, err)
			}
			report.Skipped++
			continue
		}

		chunks := s.chunker.Chunk(resume)
		if len(chunks) == 0 {
			logger.Warn("Skipping resume %d: no chunks produced", id)
			report.Skipped++
			continue
		}
		logger.Debug("Resume %d: %d chunks", id, len(chunks))

		texts := make([]string, len(chunks))
		for i, c := range chunks {
			texts[i] = c.Content
		}

		vectors, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return report, fmt.Errorf("embed resume %d: %w", id, err)
		}

		records := make([]driven.VectorRecord, len(chunks))
		for i, c := range chunks {
			records[i] = driven.VectorRecord{
				ID:       c.VectorID(),
				Values:   vectors[i],
				ResumeID: c.ResumeID,
			}
		}

		if err := s.index.Upsert(ctx, records); err != nil {
			return report, fmt.Errorf("upsert resume %d: %w", id, err)
		}

		report.Indexed++
		report.Chunks += len(chunks)
	}

	logger.Info("Indexed %d resumes (%d chunks), skipped %d", report.Indexed, report.Chunks, report.Skipped)
	return report, nil
}
