package pinecone

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
)

// fakePinecone emulates the control and data plane on one server. A
// delete is acknowledged immediately but only takes effect after
// deleteCountdown describe calls, mimicking asynchronous deletion.
type fakePinecone struct {
	t  *testing.T
	mu sync.Mutex

	url             string
	exists          bool
	deleteCountdown int

	vectors map[string]vector

	createCalls int
	deleteCalls int
	lastCreate  createIndexRequest
	lastQuery   queryRequest
	lastAPIKey  string
}

func newFakePinecone(t *testing.T, exists bool) (*fakePinecone, *Index) {
	t.Helper()
	f := &fakePinecone{t: t, exists: exists, vectors: make(map[string]vector)}

	mux := http.NewServeMux()
	mux.HandleFunc("/indexes", f.handleCreate)
	mux.HandleFunc("/indexes/", f.handleIndex)
	mux.HandleFunc("/vectors/upsert", f.handleUpsert)
	mux.HandleFunc("/query", f.handleQuery)
	mux.HandleFunc("/describe_index_stats", f.handleStats)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	f.url = srv.URL

	idx, err := NewIndex(Config{
		APIKey:          "test-key",
		Name:            "screening-cvs",
		ControlPlaneURL: srv.URL,
		PollInterval:    5 * time.Millisecond,
		PollDeadline:    time.Second,
	})
	require.NoError(t, err)
	return f, idx
}

func (f *fakePinecone) handleCreate(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAPIKey = r.Header.Get("Api-Key")

	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&f.lastCreate))
	f.createCalls++
	f.exists = true
	w.WriteHeader(http.StatusCreated)
}

func (f *fakePinecone) handleIndex(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastAPIKey = r.Header.Get("Api-Key")

	if r.Method == http.MethodDelete {
		f.deleteCalls++
		f.deleteCountdown = 2
		w.WriteHeader(http.StatusAccepted)
		return
	}

	if f.deleteCountdown > 0 {
		f.deleteCountdown--
		if f.deleteCountdown == 0 {
			f.exists = false
			f.vectors = make(map[string]vector)
		}
	}
	if !f.exists {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	desc := describeIndexResponse{Name: "screening-cvs", Dimension: 1024, Host: f.url}
	desc.Status.Ready = true
	writeJSON(f.t, w, desc)
}

func (f *fakePinecone) handleUpsert(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var req upsertRequest
	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&req))
	for _, v := range req.Vectors {
		f.vectors[v.ID] = v
	}
	writeJSON(f.t, w, map[string]int{"upsertedCount": len(req.Vectors)})
}

func (f *fakePinecone) handleQuery(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	require.NoError(f.t, json.NewDecoder(r.Body).Decode(&f.lastQuery))

	ids := make([]string, 0, len(f.vectors))
	for id := range f.vectors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	if len(ids) > f.lastQuery.TopK {
		ids = ids[:f.lastQuery.TopK]
	}

	var resp queryResponse
	for i, id := range ids {
		resp.Matches = append(resp.Matches, struct {
			ID       string         `json:"id"`
			Score    float64        `json:"score"`
			Metadata vectorMetadata `json:"metadata"`
		}{ID: id, Score: 0.99 - float64(i)*0.01, Metadata: f.vectors[id].Metadata})
	}
	writeJSON(f.t, w, resp)
}

func (f *fakePinecone) handleStats(w http.ResponseWriter, _ *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeJSON(f.t, w, statsResponse{TotalVectorCount: len(f.vectors), Dimension: 1024})
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	require.NoError(t, json.NewEncoder(w).Encode(v))
}

func TestNewIndex_Validation(t *testing.T) {
	_, err := NewIndex(Config{Name: "idx"})
	assert.Error(t, err)

	_, err = NewIndex(Config{APIKey: "key"})
	assert.Error(t, err)
}

func TestEnsure_CreatesWhenAbsent(t *testing.T) {
	f, idx := newFakePinecone(t, false)

	require.NoError(t, idx.Ensure(context.Background(), driven.CreateIfAbsent))

	assert.Equal(t, 1, f.createCalls)
	assert.Equal(t, "screening-cvs", f.lastCreate.Name)
	assert.Equal(t, 1024, f.lastCreate.Dimension)
	assert.Equal(t, "cosine", f.lastCreate.Metric)
	assert.Equal(t, "aws", f.lastCreate.Spec.Serverless.Cloud)
	assert.Equal(t, "us-east-1", f.lastCreate.Spec.Serverless.Region)
	assert.Equal(t, "test-key", f.lastAPIKey)
}

func TestEnsure_KeepsExisting(t *testing.T) {
	f, idx := newFakePinecone(t, true)

	require.NoError(t, idx.Ensure(context.Background(), driven.CreateIfAbsent))
	assert.Zero(t, f.createCalls)
	assert.Zero(t, f.deleteCalls)
}

func TestEnsure_Recreate(t *testing.T) {
	f, idx := newFakePinecone(t, true)
	f.vectors["cv_1_chunk_0"] = vector{ID: "cv_1_chunk_0", Metadata: vectorMetadata{CvNo: 1}}

	require.NoError(t, idx.Ensure(context.Background(), driven.DeleteAndRecreate))

	assert.Equal(t, 1, f.deleteCalls)
	assert.Equal(t, 1, f.createCalls)

	// The rebuilt index starts empty.
	stats, err := idx.Stats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.VectorCount)
}

func TestUpsert(t *testing.T) {
	f, idx := newFakePinecone(t, true)

	records := []driven.VectorRecord{
		{ID: "cv_1_chunk_0", Values: []float32{0.1, 0.2}, ResumeID: 1},
		{ID: "cv_1_chunk_1", Values: []float32{0.3, 0.4}, ResumeID: 1},
	}
	require.NoError(t, idx.Upsert(context.Background(), records))

	require.Len(t, f.vectors, 2)
	assert.Equal(t, 1, f.vectors["cv_1_chunk_0"].Metadata.CvNo)
	assert.Equal(t, []float32{0.3, 0.4}, f.vectors["cv_1_chunk_1"].Values)
}

func TestUpsert_Idempotent(t *testing.T) {
	f, idx := newFakePinecone(t, true)

	records := []driven.VectorRecord{
		{ID: "cv_2_chunk_0", Values: []float32{0.5}, ResumeID: 2},
	}
	require.NoError(t, idx.Upsert(context.Background(), records))

	records[0].Values = []float32{0.7}
	require.NoError(t, idx.Upsert(context.Background(), records))

	require.Len(t, f.vectors, 1)
	assert.Equal(t, []float32{0.7}, f.vectors["cv_2_chunk_0"].Values)
}

func TestUpsert_Empty(t *testing.T) {
	f, idx := newFakePinecone(t, true)

	require.NoError(t, idx.Upsert(context.Background(), nil))
	assert.Empty(t, f.vectors)
}

func TestQuery(t *testing.T) {
	f, idx := newFakePinecone(t, true)
	f.vectors["cv_1_chunk_0"] = vector{ID: "cv_1_chunk_0", Metadata: vectorMetadata{CvNo: 1}}
	f.vectors["cv_2_chunk_0"] = vector{ID: "cv_2_chunk_0", Metadata: vectorMetadata{CvNo: 2}}

	hits, err := idx.Query(context.Background(), []float32{0.1, 0.2}, 7)
	require.NoError(t, err)
	require.Len(t, hits, 2)

	assert.Equal(t, 7, f.lastQuery.TopK)
	assert.True(t, f.lastQuery.IncludeMetadata)
	assert.Equal(t, []float32{0.1, 0.2}, f.lastQuery.Vector)

	assert.Equal(t, "cv_1_chunk_0", hits[0].ID)
	assert.Equal(t, 1, hits[0].ResumeID)
	assert.Equal(t, 2, hits[1].ResumeID)
	assert.Greater(t, hits[0].Score, hits[1].Score)
}

func TestQuery_MissingIndex(t *testing.T) {
	_, idx := newFakePinecone(t, false)

	_, err := idx.Query(context.Background(), []float32{0.1}, 7)
	assert.ErrorIs(t, err, domain.ErrIndexUnavailable)
}

func TestStats(t *testing.T) {
	f, idx := newFakePinecone(t, true)
	f.vectors["cv_1_chunk_0"] = vector{ID: "cv_1_chunk_0"}

	stats, err := idx.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.VectorCount)
	assert.Equal(t, 1024, stats.Dimension)
}
