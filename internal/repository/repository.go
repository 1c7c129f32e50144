package repository

import (
	"context"

	"topoconf/internal/domain"
)

// TopologyStore holds the single current topology record.
// Every write replaces the whole record.
type TopologyStore interface {
	Get() *domain.TopologyRecord
	Set(record *domain.TopologyRecord)
	Reset()
}

// RevisionLog records every record replacement for the lifetime of the process
type RevisionLog interface {
	Append(ctx context.Context, rev *domain.Revision) error
	List(ctx context.Context, limit int) ([]domain.Revision, error)
	Count(ctx context.Context) (int, error)

	// Close releases resources
	Close() error
}
