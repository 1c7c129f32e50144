package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"topoconf/internal/domain"
)

// Column order must match revisionRow.scanArgs() and revisionInsertArgs()
const revisionColumns = `id, action, checksum, record_json, created_at`

// revisionRow holds all columns from a revision query for scanning
type revisionRow struct {
	ID         string
	Action     string
	Checksum   string
	RecordJSON string
	CreatedAt  string
}

func (r *revisionRow) scanArgs() []interface{} {
	return []interface{}{
		&r.ID,
		&r.Action,
		&r.Checksum,
		&r.RecordJSON,
		&r.CreatedAt,
	}
}

func (r *revisionRow) toDomain() (*domain.Revision, error) {
	rec := &domain.TopologyRecord{}
	if err := json.Unmarshal([]byte(r.RecordJSON), rec); err != nil {
		return nil, fmt.Errorf("failed to unmarshal revision %s: %w", r.ID, err)
	}
	rec.Normalize()

	createdAt, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse revision time %q: %w", r.CreatedAt, err)
	}

	return &domain.Revision{
		ID:        r.ID,
		Action:    domain.RevisionAction(r.Action),
		CreatedAt: createdAt,
		Checksum:  r.Checksum,
		Record:    rec,
	}, nil
}

func revisionInsertArgs(rev *domain.Revision) ([]interface{}, error) {
	if rev == nil || rev.Record == nil {
		return nil, fmt.Errorf("revision has no record")
	}
	data, err := json.Marshal(rev.Record)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal revision record: %w", err)
	}
	return []interface{}{
		rev.ID,
		string(rev.Action),
		rev.Checksum,
		string(data),
		rev.CreatedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}
