package driving

import (
	"context"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
)

// Screener runs the query pipeline for one job description: retrieve
// the most similar resumé chunks, assemble the candidate context and
// request an analysis from the reasoning service.
//
// An empty job description is rejected with domain.ErrEmptyQuery
// before any pipeline work begins.
type Screener interface {
	Screen(ctx context.Context, jobDescription string) (*domain.Analysis, error)
}
