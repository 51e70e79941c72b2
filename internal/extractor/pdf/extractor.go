// Package pdf extracts plain text from PDF files using the pdftotext
// binary (poppler-utils).
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
)

// Extractor extracts per-page text from PDF files. Pages are joined
// with newline separators and surrounding whitespace is trimmed, so an
// Extract result of "" means the document had no extractable text.
type Extractor struct {
	runner driven.CommandRunner
}

// Option configures the extractor.
type Option func(*Extractor)

// WithRunner sets a custom command runner. Useful for testing.
func WithRunner(r driven.CommandRunner) Option {
	return func(e *Extractor) {
		if r != nil {
			e.runner = r
		}
	}
}

// New creates a new PDF extractor.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		runner: execRunner{},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Extract runs pdftotext on the file at path and returns its text.
// pdftotext separates pages with form feeds; those become newlines so
// downstream chunking sees one continuous document.
func (e *Extractor) Extract(ctx context.Context, path string) (string, error) {
	out, err := e.runner.Run(ctx, "pdftotext", "-enc", "UTF-8", path, "-")
	if err != nil {
		return "", fmt.Errorf("pdftotext %s: %w", path, err)
	}

	pages := strings.Split(string(out), "\f")
	text := strings.Join(pages, "\n")
	return strings.TrimSpace(text), nil
}
