package driven

import (
	"context"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
)

// AnalysisRequest is one submission to the reasoning service.
type AnalysisRequest struct {
	// Input is the composite prompt: job description plus assembled
	// resumé context.
	Input string

	// Requirements is the declarative list of rules the response must
	// satisfy. The service returns a compliance report for them.
	Requirements []domain.Requirement

	// Budget is the computation tier for the run.
	Budget domain.Budget
}

// ReasoningService submits analysis runs to an external reasoning
// service and blocks until completion.
//
// Analyze polls the run until it reaches a terminal state. Network or
// service errors are fatal for the query and must be surfaced to the
// caller, never swallowed.
type ReasoningService interface {
	Analyze(ctx context.Context, req AnalysisRequest) (*domain.Analysis, error)

	// Close releases resources.
	Close() error
}
