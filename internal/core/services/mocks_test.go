package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
)

type mockSource struct {
	resumes map[int]*domain.Resume
	count   int
	loads   []int
}

func (m *mockSource) Count() int { return m.count }

func (m *mockSource) Load(_ context.Context, id int) (*domain.Resume, error) {
	m.loads = append(m.loads, id)
	resume, ok := m.resumes[id]
	if !ok {
		return nil, fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	if resume.Text == "" {
		return nil, fmt.Errorf("resume %d: %w", id, domain.ErrEmptyDocument)
	}
	return resume, nil
}

type mockEmbedder struct {
	err        error
	embedCalls int
	batchCalls int
	lastBatch  []string
	lastText   string
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	m.embedCalls++
	m.lastText = text
	if m.err != nil {
		return nil, m.err
	}
	return []float32{float32(len(text)), 1}, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batchCalls++
	m.lastBatch = texts
	if m.err != nil {
		return nil, m.err
	}
	vecs := make([][]float32, len(texts))
	for i, t := range texts {
		vecs[i] = []float32{float32(len(t)), float32(i)}
	}
	return vecs, nil
}

func (m *mockEmbedder) Dimensions() int { return 2 }

func (m *mockEmbedder) ModelName() string { return "mock-embed" }

func (m *mockEmbedder) Ping(_ context.Context) error { return nil }

func (m *mockEmbedder) Close() error { return nil }

type storedVector struct {
	values   []float32
	resumeID int
}

type mockIndex struct {
	store      map[string]storedVector
	hits       []driven.VectorHit
	ensureErr  error
	upsertErr  error
	queryErr   error
	policies   []driven.EnsurePolicy
	queryCalls int
	lastK      int
	lastVector []float32
}

func newMockIndex() *mockIndex {
	return &mockIndex{store: make(map[string]storedVector)}
}

func (m *mockIndex) Ensure(_ context.Context, policy driven.EnsurePolicy) error {
	m.policies = append(m.policies, policy)
	if m.ensureErr != nil {
		return m.ensureErr
	}
	if policy == driven.DeleteAndRecreate {
		m.store = make(map[string]storedVector)
	}
	return nil
}

func (m *mockIndex) Upsert(_ context.Context, records []driven.VectorRecord) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	for _, r := range records {
		m.store[r.ID] = storedVector{values: r.Values, resumeID: r.ResumeID}
	}
	return nil
}

func (m *mockIndex) Query(_ context.Context, vector []float32, k int) ([]driven.VectorHit, error) {
	m.queryCalls++
	m.lastVector = vector
	m.lastK = k
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	return m.hits, nil
}

func (m *mockIndex) Stats(_ context.Context) (driven.IndexStats, error) {
	return driven.IndexStats{VectorCount: len(m.store), Dimension: 2}, nil
}

func (m *mockIndex) Close() error { return nil }

type mockReasoner struct {
	analysis *domain.Analysis
	err      error
	calls    int
	lastReq  driven.AnalysisRequest
}

func (m *mockReasoner) Analyze(_ context.Context, req driven.AnalysisRequest) (*domain.Analysis, error) {
	m.calls++
	m.lastReq = req
	if m.err != nil {
		return nil, m.err
	}
	return m.analysis, nil
}

func (m *mockReasoner) Close() error { return nil }
