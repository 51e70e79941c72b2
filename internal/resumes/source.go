// Package resumes loads resumé documents from the local filesystem
// following the fixed `cv (<n>).pdf` naming convention.
package resumes

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/screena-cli/internal/core/domain"
	"github.com/custodia-labs/screena-cli/internal/core/ports/driven"
)

// Ensure Source implements the interface.
var _ driven.ResumeSource = (*Source)(nil)

// TextExtractor extracts the full text of one document file.
type TextExtractor interface {
	Extract(ctx context.Context, path string) (string, error)
}

// Source resolves resumé IDs to files under a directory and extracts
// their text.
type Source struct {
	dir       string
	count     int
	extractor TextExtractor
}

// NewSource creates a resumé source over dir holding count resumé
// slots named `cv (1).pdf` .. `cv (<count>).pdf`.
func NewSource(dir string, count int, extractor TextExtractor) *Source {
	return &Source{
		dir:       dir,
		count:     count,
		extractor: extractor,
	}
}

// Count returns the number of resumé slots.
func (s *Source) Count() int {
	return s.count
}

// PathFor returns the conventional path for a resumé ID.
func (s *Source) PathFor(id int) string {
	return filepath.Join(s.dir, fmt.Sprintf("cv (%d).pdf", id))
}

// Load reads and extracts the resumé with the given ID.
func (s *Source) Load(ctx context.Context, id int) (*domain.Resume, error) {
	if id < 1 || id > s.count {
		return nil, fmt.Errorf("resume id %d out of range [1, %d]: %w", id, s.count, domain.ErrInvalidInput)
	}

	path := s.PathFor(id)
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("resume %d (%s): %w", id, path, domain.ErrNotFound)
	}

	text, err := s.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extract resume %d: %w", id, err)
	}
	if text == "" {
		return nil, fmt.Errorf("resume %d (%s): %w", id, path, domain.ErrEmptyDocument)
	}

	return &domain.Resume{
		ID:   id,
		Path: path,
		Text: text,
	}, nil
}
