package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"

	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
)

// Ensure execRunner implements the interface.
var _ driven.CommandRunner = execRunner{}

// execRunner runs commands with os/exec.
type execRunner struct{}

// Run executes the command and returns its stdout. Stderr is folded
// into the error so extraction failures carry the tool's diagnostics.
func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	out, err := exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) > 0 {
			return nil, fmt.Errorf("%w: %s", err, exitErr.Stderr)
		}
		return nil, err
	}
	return out, nil
}
