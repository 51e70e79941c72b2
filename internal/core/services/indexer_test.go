package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/screena-cli/internal/chunker"
	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driving"
)

func TestBuildIndex(t *testing.T) {
	source := &mockSource{
		count: 2,
		resumes: map[int]*domain.Resume{
			1: {ID: 1, Text: "Python, AWS, 5 years backend experience"},
			2: {ID: 2, Text: "Go, Kubernetes, platform engineering"},
		},
	}
	embedder := &mockEmbedder{}
	index := newMockIndex()

	svc := NewIndexerService(source, nil, embedder, index)
	report, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Indexed)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 2, report.Chunks)

	require.Contains(t, index.store, "cv_1_chunk_0")
	require.Contains(t, index.store, "cv_2_chunk_0")
	assert.Equal(t, 1, index.store["cv_1_chunk_0"].resumeID)
	assert.Equal(t, 2, index.store["cv_2_chunk_0"].resumeID)
	assert.Equal(t, []driven.EnsurePolicy{driven.CreateIfAbsent}, index.policies)
}

func TestBuildIndex_SingleShortResume(t *testing.T) {
	// A resumé shorter than the chunk size produces exactly one vector.
	source := &mockSource{
		count: 1,
		resumes: map[int]*domain.Resume{
			1: {ID: 1, Text: "Python, AWS, 5 years backend experience"},
		},
	}
	index := newMockIndex()

	svc := NewIndexerService(source, chunker.New(), &mockEmbedder{}, index)
	report, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Chunks)
	require.Len(t, index.store, 1)
	assert.Contains(t, index.store, "cv_1_chunk_0")
}

func TestBuildIndex_SkipsMissingResumes(t *testing.T) {
	source := &mockSource{
		count: 3,
		resumes: map[int]*domain.Resume{
			1: {ID: 1, Text: "first"},
			3: {ID: 3, Text: "third"},
		},
	}
	index := newMockIndex()

	svc := NewIndexerService(source, nil, &mockEmbedder{}, index)
	report, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, report.Indexed)
	assert.Equal(t, 1, report.Skipped)
	assert.NotContains(t, index.store, "cv_2_chunk_0")
}

func TestBuildIndex_SkipsEmptyResumes(t *testing.T) {
	source := &mockSource{
		count: 2,
		resumes: map[int]*domain.Resume{
			1: {ID: 1, Text: "real content"},
			2: {ID: 2, Text: ""},
		},
	}
	index := newMockIndex()

	svc := NewIndexerService(source, nil, &mockEmbedder{}, index)
	report, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, report.Indexed)
	assert.Equal(t, 1, report.Skipped)
}

func TestBuildIndex_Idempotent(t *testing.T) {
	source := &mockSource{
		count: 2,
		resumes: map[int]*domain.Resume{
			1: {ID: 1, Text: strings.Repeat("backend engineer. ", 100)},
			2: {ID: 2, Text: "short resume"},
		},
	}
	index := newMockIndex()
	svc := NewIndexerService(source, nil, &mockEmbedder{}, index)

	_, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)
	first := len(index.store)

	_, err = svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)

	// Deterministic IDs make re-indexing overwrite in place.
	assert.Equal(t, first, len(index.store))
}

func TestBuildIndex_Recreate(t *testing.T) {
	source := &mockSource{
		count:   1,
		resumes: map[int]*domain.Resume{1: {ID: 1, Text: "content"}},
	}
	index := newMockIndex()
	index.store["cv_9_chunk_0"] = storedVector{resumeID: 9}

	svc := NewIndexerService(source, nil, &mockEmbedder{}, index)
	_, err := svc.BuildIndex(context.Background(), driving.IndexOptions{Recreate: true})
	require.NoError(t, err)

	assert.Equal(t, []driven.EnsurePolicy{driven.DeleteAndRecreate}, index.policies)
	assert.NotContains(t, index.store, "cv_9_chunk_0")
	assert.Contains(t, index.store, "cv_1_chunk_0")
}

func TestBuildIndex_EnsureError(t *testing.T) {
	index := newMockIndex()
	index.ensureErr = domain.ErrIndexUnavailable

	svc := NewIndexerService(&mockSource{count: 1}, nil, &mockEmbedder{}, index)
	_, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestBuildIndex_EmbedErrorAborts(t *testing.T) {
	source := &mockSource{
		count:   2,
		resumes: map[int]*domain.Resume{1: {ID: 1, Text: "content"}, 2: {ID: 2, Text: "more"}},
	}
	fail := errors.New("embedding service down")
	index := newMockIndex()

	svc := NewIndexerService(source, nil, &mockEmbedder{err: fail}, index)
	report, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.ErrorIs(t, err, fail)
	assert.Equal(t, 0, report.Indexed)
	assert.Empty(t, index.store)
}

func TestBuildIndex_UpsertErrorAborts(t *testing.T) {
	source := &mockSource{
		count:   1,
		resumes: map[int]*domain.Resume{1: {ID: 1, Text: "content"}},
	}
	index := newMockIndex()
	index.upsertErr = domain.ErrIndexUnavailable

	svc := NewIndexerService(source, nil, &mockEmbedder{}, index)
	_, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestBuildIndex_ChunkedResume(t *testing.T) {
	long := strings.Repeat("distributed systems experience. ", 200)
	source := &mockSource{
		count:   1,
		resumes: map[int]*domain.Resume{1: {ID: 1, Text: long}},
	}
	embedder := &mockEmbedder{}
	index := newMockIndex()

	svc := NewIndexerService(source, nil, embedder, index)
	report, err := svc.BuildIndex(context.Background(), driving.IndexOptions{})
	require.NoError(t, err)

	assert.Greater(t, report.Chunks, 1)
	assert.Len(t, index.store, report.Chunks)
	assert.Len(t, embedder.lastBatch, report.Chunks)
	for i := 0; i < report.Chunks; i++ {
		assert.Contains(t, index.store, domain.Chunk{ResumeID: 1, Position: i}.VectorID())
	}
}
