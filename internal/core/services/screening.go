package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driving"
	"github.com/custodia-labs/screena-cli/internal/logger"
)

// Ensure ScreeningService implements the interface.
var _ driving.Screener = (*ScreeningService)(nil)

// DefaultTopK is the number of chunks retrieved per screening query.
const DefaultTopK = 7

// promptTemplate frames the analysis request. The first placeholder is
// the job description, the second the assembled resumé context.
const promptTemplate = `You are an expert HR assistant. Your task is to analyze the provided candidate resumé context and determine if the candidate is a good fit for the given job description.

**Job Description:**
%s

---

**Resumé Context:**
%s

---

Based on your analysis, provide a structured summary of the candidate.`

// ScreeningService runs the query pipeline for one job description.
type ScreeningService struct {
	source   driven.ResumeSource
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	reasoner driven.ReasoningService
	topK     int
	budget   domain.Budget
}

// NewScreeningService creates a new screening pipeline.
func NewScreeningService(
	source driven.ResumeSource,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	reasoner driven.ReasoningService,
) *ScreeningService {
	return &ScreeningService{
		source:   source,
		embedder: embedder,
		index:    index,
		reasoner: reasoner,
		topK:     DefaultTopK,
		budget:   domain.BudgetLow,
	}
}

// SetTopK overrides the number of retrieved chunks.
func (s *ScreeningService) SetTopK(k int) {
	if k > 0 {
		s.topK = k
	}
}

// SetBudget overrides the reasoning computation tier.
func (s *ScreeningService) SetBudget(b domain.Budget) {
	if b != "" {
		s.budget = b
	}
}

// Screen embeds the job description, retrieves the most similar
// resumé chunks, assembles the candidate context and submits the
// analysis request. An empty job description is rejected before any
// pipeline work.
func (s *ScreeningService) Screen(ctx context.Context, jobDescription string) (*domain.Analysis, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, domain.ErrEmptyQuery
	}

	reqID := uuid.New().String()
	logger.Section("Screening")
	logger.Debug("Request %s: %q", reqID, jobDescription)

	vec, err := s.embedder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Query(ctx, vec, s.topK)
	if err != nil {
		return nil, fmt.Errorf("retrieve chunks: %w", err)
	}
	logger.Debug("Request %s: %d chunks retrieved", reqID, len(hits))

	resumeContext := s.assembleContext(ctx, hits)

	prompt := fmt.Sprintf(promptTemplate, jobDescription, resumeContext)
	logger.Debug("Request %s: prompt is %d characters", reqID, len(prompt))

	analysis, err := s.reasoner.Analyze(ctx, driven.AnalysisRequest{
		Input:        prompt,
		Requirements: domain.DefaultRequirements(),
		Budget:       s.budget,
	})
	if err != nil {
		return nil, fmt.Errorf("request analysis: %w", err)
	}
	logger.Info("Request %s: analysis complete, score %.2f", reqID, analysis.Score)
	return analysis, nil
}

// assembleContext re-loads the full text of each distinct resumé
// referenced by the hits, in first-appearance order. The whole
// document goes into the context, not just the matched chunk, trading
// prompt size for completeness. A resumé that can no longer be read is
// skipped; it never aborts the request.
func (s *ScreeningService) assembleContext(ctx context.Context, hits []driven.VectorHit) string {
	var b strings.Builder
	seen := make(map[int]bool)

	for _, hit := range hits {
		if seen[hit.ResumeID] {
			continue
		}
		seen[hit.ResumeID] = true

		fmt.Fprintf(&b, "**CV No %d**\n", hit.ResumeID)

		resume, err := s.source.Load(ctx, hit.ResumeID)
		if err != nil {
			logger.Warn("Context assembly: resume %d unreadable: %v", hit.ResumeID, err)
			continue
		}
		b.WriteString(resume.Text)
		b.WriteString("\n---\n")
	}
	return b.String()
}
