package driven

import (
	"context"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
)

// ResumeSource loads resumé documents from their fixed filesystem
// convention. Reads are side-effect free; documents are never mutated
// or persisted beyond the filesystem.
type ResumeSource interface {
	// Count returns the number of resumé slots, N. Valid IDs are
	// [1, N]; a slot may still be missing on disk.
	Count() int

	// Load resolves the conventional path for id, extracts the full
	// text and returns the resumé. Returns domain.ErrNotFound when the
	// file is absent and domain.ErrEmptyDocument when it yields no
	// text.
	Load(ctx context.Context, id int) (*domain.Resume, error)
}

// CommandRunner executes an external command and returns its stdout.
// It exists so text extraction can be tested without the real binary.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}
