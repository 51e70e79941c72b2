// Package pinecone provides a vector index adapter using the Pinecone
// REST API. The control plane (api.pinecone.io) manages the index
// lifecycle; vector operations go to the per-index data-plane host
// returned by DescribeIndex.
package pinecone

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
	"github.com/custodia-labs/screena-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Default configuration values.
const (
	DefaultControlPlaneURL = "https://api.pinecone.io"
	DefaultDimension       = 1024
	DefaultMetric          = "cosine"
	DefaultCloud           = "aws"
	DefaultRegion          = "us-east-1"
	DefaultTimeout         = 30 * time.Second

	// DefaultPollInterval and DefaultPollDeadline bound the
	// status-polling loops around index deletion and creation.
	DefaultPollInterval = 2 * time.Second
	DefaultPollDeadline = 2 * time.Minute
)

// Config holds configuration for the Pinecone index.
type Config struct {
	// APIKey is the Pinecone API key (required).
	APIKey string

	// Name is the index name (required).
	Name string

	// Dimension is the vector dimension (default: 1024).
	Dimension int

	// Metric is the similarity metric (default: cosine).
	Metric string

	// Cloud and Region select where a serverless index is provisioned
	// (defaults: aws, us-east-1).
	Cloud  string
	Region string

	// ControlPlaneURL overrides the control-plane endpoint. Useful
	// for testing.
	ControlPlaneURL string

	// Host overrides data-plane host discovery. Useful for testing.
	Host string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// PollInterval and PollDeadline bound the deletion/creation
	// status polls.
	PollInterval time.Duration
	PollDeadline time.Duration
}

// Index is a Pinecone-backed vector index.
type Index struct {
	client       *http.Client
	controlPlane string
	host         string
	apiKey       string
	name         string
	dimension    int
	metric       string
	cloud        string
	region       string
	pollInterval time.Duration
	pollDeadline time.Duration
}

// createIndexRequest is the control-plane create request.
type createIndexRequest struct {
	Name      string    `json:"name"`
	Dimension int       `json:"dimension"`
	Metric    string    `json:"metric"`
	Spec      indexSpec `json:"spec"`
}

type indexSpec struct {
	Serverless serverlessSpec `json:"serverless"`
}

type serverlessSpec struct {
	Cloud  string `json:"cloud"`
	Region string `json:"region"`
}

// describeIndexResponse is the control-plane describe response.
type describeIndexResponse struct {
	Name      string `json:"name"`
	Dimension int    `json:"dimension"`
	Metric    string `json:"metric"`
	Host      string `json:"host"`
	Status    struct {
		Ready bool   `json:"ready"`
		State string `json:"state"`
	} `json:"status"`
}

// upsertRequest is the data-plane upsert request.
type upsertRequest struct {
	Vectors []vector `json:"vectors"`
}

type vector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata vectorMetadata `json:"metadata"`
}

type vectorMetadata struct {
	CvNo int `json:"cv_no"`
}

// queryRequest is the data-plane query request.
type queryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
}

// queryResponse is the data-plane query response.
type queryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float64        `json:"score"`
		Metadata vectorMetadata `json:"metadata"`
	} `json:"matches"`
}

// statsResponse is the data-plane describe_index_stats response.
type statsResponse struct {
	TotalVectorCount int `json:"totalVectorCount"`
	Dimension        int `json:"dimension"`
}

// NewIndex creates a new Pinecone index adapter.
func NewIndex(cfg Config) (*Index, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("pinecone: API key is required")
	}
	if cfg.Name == "" {
		return nil, fmt.Errorf("pinecone: index name is required")
	}
	if cfg.ControlPlaneURL == "" {
		cfg.ControlPlaneURL = DefaultControlPlaneURL
	}
	if cfg.Dimension == 0 {
		cfg.Dimension = DefaultDimension
	}
	if cfg.Metric == "" {
		cfg.Metric = DefaultMetric
	}
	if cfg.Cloud == "" {
		cfg.Cloud = DefaultCloud
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.PollDeadline == 0 {
		cfg.PollDeadline = DefaultPollDeadline
	}

	return &Index{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		controlPlane: cfg.ControlPlaneURL,
		host:         cfg.Host,
		apiKey:       cfg.APIKey,
		name:         cfg.Name,
		dimension:    cfg.Dimension,
		metric:       cfg.Metric,
		cloud:        cfg.Cloud,
		region:       cfg.Region,
		pollInterval: cfg.PollInterval,
		pollDeadline: cfg.PollDeadline,
	}, nil
}

// Ensure guarantees the index exists per the given policy. With
// DeleteAndRecreate an existing index is deleted first, and creation
// waits until the control plane confirms the old index is gone; a
// fixed sleep would race the asynchronous deletion.
func (x *Index) Ensure(ctx context.Context, policy driven.EnsurePolicy) error {
	desc, exists, err := x.describe(ctx)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}

	if exists && policy == driven.CreateIfAbsent {
		x.host = hostURL(x.host, desc.Host)
		logger.Debug("Index %q exists (host %s)", x.name, desc.Host)
		return nil
	}

	if exists {
		logger.Info("Deleting index %q for clean rebuild", x.name)
		if err := x.deleteIndex(ctx); err != nil {
			return fmt.Errorf("%w: delete index: %w", domain.ErrIndexUnavailable, err)
		}
		if err := x.waitDeleted(ctx); err != nil {
			return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
		}
	}

	logger.Info("Creating index %q (dimension %d, metric %s)", x.name, x.dimension, x.metric)
	if err := x.create(ctx); err != nil {
		return fmt.Errorf("%w: create index: %w", domain.ErrIndexUnavailable, err)
	}
	if err := x.waitReady(ctx); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	return nil
}

// Upsert writes chunk vectors. Writes are idempotent per vector ID:
// re-indexing a resumé overwrites its previous chunks.
func (x *Index) Upsert(ctx context.Context, records []driven.VectorRecord) error {
	if len(records) == 0 {
		return nil
	}
	host, err := x.dataPlane(ctx)
	if err != nil {
		return err
	}

	vectors := make([]vector, len(records))
	for i, r := range records {
		vectors[i] = vector{
			ID:       r.ID,
			Values:   r.Values,
			Metadata: vectorMetadata{CvNo: r.ResumeID},
		}
	}

	var out json.RawMessage
	if err := x.do(ctx, http.MethodPost, host+"/vectors/upsert", upsertRequest{Vectors: vectors}, &out); err != nil {
		return fmt.Errorf("pinecone upsert: %w", err)
	}
	return nil
}

// Query returns the k nearest chunks to the query vector, ranked by
// descending similarity score.
func (x *Index) Query(ctx context.Context, vec []float32, k int) ([]driven.VectorHit, error) {
	host, err := x.dataPlane(ctx)
	if err != nil {
		return nil, err
	}

	var resp queryResponse
	req := queryRequest{Vector: vec, TopK: k, IncludeMetadata: true}
	if err := x.do(ctx, http.MethodPost, host+"/query", req, &resp); err != nil {
		return nil, fmt.Errorf("pinecone query: %w", err)
	}

	hits := make([]driven.VectorHit, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		hits = append(hits, driven.VectorHit{
			ID:       m.ID,
			ResumeID: m.Metadata.CvNo,
			Score:    m.Score,
		})
	}
	return hits, nil
}

// Stats returns the current vector count.
func (x *Index) Stats(ctx context.Context) (driven.IndexStats, error) {
	host, err := x.dataPlane(ctx)
	if err != nil {
		return driven.IndexStats{}, err
	}

	var resp statsResponse
	if err := x.do(ctx, http.MethodPost, host+"/describe_index_stats", struct{}{}, &resp); err != nil {
		return driven.IndexStats{}, fmt.Errorf("pinecone stats: %w", err)
	}
	return driven.IndexStats{
		VectorCount: resp.TotalVectorCount,
		Dimension:   resp.Dimension,
	}, nil
}

// Close releases resources.
func (x *Index) Close() error {
	return nil
}

// describe fetches the index description. exists is false on 404.
func (x *Index) describe(ctx context.Context) (*describeIndexResponse, bool, error) {
	url := fmt.Sprintf("%s/indexes/%s", x.controlPlane, x.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, false, fmt.Errorf("create request: %w", err)
	}
	x.setHeaders(req)

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("describe index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("describe index (status %d): %s", resp.StatusCode, string(body))
	}

	var desc describeIndexResponse
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, false, fmt.Errorf("decode response: %w", err)
	}
	return &desc, true, nil
}

func (x *Index) create(ctx context.Context) error {
	reqBody := createIndexRequest{
		Name:      x.name,
		Dimension: x.dimension,
		Metric:    x.metric,
		Spec: indexSpec{
			Serverless: serverlessSpec{Cloud: x.cloud, Region: x.region},
		},
	}
	var out json.RawMessage
	return x.do(ctx, http.MethodPost, x.controlPlane+"/indexes", reqBody, &out)
}

func (x *Index) deleteIndex(ctx context.Context) error {
	url := fmt.Sprintf("%s/indexes/%s", x.controlPlane, x.name)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	x.setHeaders(req)

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("delete index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("delete index (status %d): %s", resp.StatusCode, string(body))
	}
	return nil
}

// waitDeleted polls DescribeIndex until the control plane reports the
// index gone.
func (x *Index) waitDeleted(ctx context.Context) error {
	deadline := time.Now().Add(x.pollDeadline)
	for {
		_, exists, err := x.describe(ctx)
		if err != nil {
			return fmt.Errorf("confirm deletion: %w", err)
		}
		if !exists {
			x.host = ""
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("index %q still exists after %s", x.name, x.pollDeadline)
		}
		logger.Debug("Index %q still deleting, waiting %s", x.name, x.pollInterval)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(x.pollInterval):
		}
	}
}

// waitReady polls DescribeIndex until the index reports ready, then
// caches the data-plane host.
func (x *Index) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(x.pollDeadline)
	for {
		desc, exists, err := x.describe(ctx)
		if err != nil {
			return fmt.Errorf("confirm creation: %w", err)
		}
		if exists && desc.Status.Ready {
			x.host = hostURL(x.host, desc.Host)
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("index %q not ready after %s", x.name, x.pollDeadline)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(x.pollInterval):
		}
	}
}

// dataPlane returns the data-plane base URL, discovering it from the
// control plane on first use.
func (x *Index) dataPlane(ctx context.Context) (string, error) {
	if x.host != "" {
		return x.host, nil
	}
	desc, exists, err := x.describe(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrIndexUnavailable, err)
	}
	if !exists {
		return "", fmt.Errorf("%w: index %q does not exist", domain.ErrIndexUnavailable, x.name)
	}
	x.host = hostURL("", desc.Host)
	return x.host, nil
}

// do performs a JSON request and decodes the response into out.
func (x *Index) do(ctx context.Context, method, url string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	x.setHeaders(req)

	resp, err := x.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if out != nil && len(body) > 0 {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (x *Index) setHeaders(req *http.Request) {
	req.Header.Set("Api-Key", x.apiKey)
}

// hostURL normalises the host from DescribeIndex into a base URL,
// preferring an explicit override.
func hostURL(override, host string) string {
	if override != "" {
		return override
	}
	if host == "" {
		return ""
	}
	if strings.HasPrefix(host, "http://") || strings.HasPrefix(host, "https://") {
		return host
	}
	return "https://" + host
}
