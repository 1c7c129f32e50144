// Package loader reads topology files from disk and applies them as the
// current record.
package loader

import (
	"context"
	"fmt"
	"os"

	"topoconf/internal/codec"
	"topoconf/internal/domain"
)

// Replacer swaps in a new current record
type Replacer interface {
	Replace(ctx context.Context, action domain.RevisionAction, record *domain.TopologyRecord)
}

// LoadFile reads a JSON or YAML topology file; the codec is chosen by extension
func LoadFile(path string) (*domain.TopologyRecord, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open topology file: %w", err)
	}
	defer f.Close()

	record, err := c.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return record, nil
}

// Apply loads path and hands the record to r as a seed revision.
// On error r is not called.
func Apply(ctx context.Context, r Replacer, path string) (*domain.TopologyRecord, error) {
	record, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	r.Replace(ctx, domain.RevisionSeed, record)
	return record, nil
}
