// Package maestro provides a reasoning service adapter using the AI21
// Maestro runs API. A run is created with the analysis requirements
// attached, then polled until it reaches a terminal status.
package maestro

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
	"github.com/custodia-labs/screena-cli/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ReasoningService = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "https://api.ai21.com"

	// DefaultTimeout bounds a single HTTP request, not the run.
	DefaultTimeout = 30 * time.Second

	// DefaultPollInterval and DefaultPollDeadline bound the
	// completion poll. Reasoning runs routinely take tens of seconds.
	DefaultPollInterval = 2 * time.Second
	DefaultPollDeadline = 5 * time.Minute
)

const runsPath = "/studio/v1/maestro/runs"

// Run statuses reported by the service.
const (
	statusCompleted = "completed"
	statusFailed    = "failed"
)

// Config holds configuration for the Maestro client.
type Config struct {
	// APIKey is the AI21 API key (required).
	APIKey string

	// BaseURL is the API base URL (default: https://api.ai21.com).
	BaseURL string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// PollInterval is the delay between status polls (default: 2s).
	PollInterval time.Duration

	// PollDeadline caps the total wait for completion (default: 5m).
	PollDeadline time.Duration
}

// Client submits analysis runs to Maestro and polls them to
// completion.
type Client struct {
	client       *http.Client
	baseURL      string
	apiKey       string
	pollInterval time.Duration
	pollDeadline time.Duration
}

// runRequest is the run creation request format.
type runRequest struct {
	Input        string        `json:"input"`
	Requirements []requirement `json:"requirements"`
	Budget       string        `json:"budget"`
	Include      []string      `json:"include"`
}

type requirement struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// runResponse is the run resource returned on creation and polling.
type runResponse struct {
	ID                 string              `json:"id"`
	Status             string              `json:"status"`
	Result             string              `json:"result"`
	RequirementsResult *requirementsResult `json:"requirements_result"`
}

type requirementsResult struct {
	Score        float64 `json:"score"`
	Requirements []struct {
		Name  string  `json:"name"`
		Score float64 `json:"score"`
	} `json:"requirements"`
}

// NewClient creates a new Maestro client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("maestro: API key is required")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
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

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL:      cfg.BaseURL,
		apiKey:       cfg.APIKey,
		pollInterval: cfg.PollInterval,
		pollDeadline: cfg.PollDeadline,
	}, nil
}

// Analyze creates a run and blocks until the service reports a
// terminal status, returning the result and the requirements
// compliance report.
func (c *Client) Analyze(ctx context.Context, req driven.AnalysisRequest) (*domain.Analysis, error) {
	run, err := c.createRun(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}
	logger.Debug("Created reasoning run %s (budget %s)", run.ID, req.Budget)

	run, err = c.pollRun(ctx, run)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrAnalysisFailed, err)
	}

	analysis := &domain.Analysis{
		Result: run.Result,
	}
	if run.RequirementsResult != nil {
		analysis.Score = run.RequirementsResult.Score
		for _, r := range run.RequirementsResult.Requirements {
			analysis.Requirements = append(analysis.Requirements, domain.RequirementResult{
				Name:  r.Name,
				Score: r.Score,
			})
		}
	}
	return analysis, nil
}

// Close releases resources.
func (c *Client) Close() error {
	return nil
}

func (c *Client) createRun(ctx context.Context, req driven.AnalysisRequest) (*runResponse, error) {
	budget := req.Budget
	if budget == "" {
		budget = domain.BudgetLow
	}

	reqs := make([]requirement, len(req.Requirements))
	for i, r := range req.Requirements {
		reqs[i] = requirement{Name: r.Name, Description: r.Description}
	}

	reqBody := runRequest{
		Input:        req.Input,
		Requirements: reqs,
		Budget:       string(budget),
		Include:      []string{"requirements_result"},
	}

	var run runResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+runsPath, reqBody, &run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	if run.ID == "" {
		return nil, fmt.Errorf("create run: no run ID in response")
	}
	return &run, nil
}

// pollRun polls the run until a terminal status or the deadline.
func (c *Client) pollRun(ctx context.Context, run *runResponse) (*runResponse, error) {
	deadline := time.Now().Add(c.pollDeadline)
	for {
		switch run.Status {
		case statusCompleted:
			return run, nil
		case statusFailed:
			return nil, fmt.Errorf("run %s failed", run.ID)
		}

		if time.Now().After(deadline) {
			return nil, fmt.Errorf("run %s not finished after %s", run.ID, c.pollDeadline)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		var next runResponse
		url := fmt.Sprintf("%s%s/%s", c.baseURL, runsPath, run.ID)
		if err := c.do(ctx, http.MethodGet, url, nil, &next); err != nil {
			return nil, fmt.Errorf("poll run %s: %w", run.ID, err)
		}
		logger.Debug("Run %s status: %s", next.ID, next.Status)
		run = &next
	}
}

// do performs a JSON request and decodes the response into out.
func (c *Client) do(ctx context.Context, method, url string, in, out any) error {
	var reqBody io.Reader = http.NoBody
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
