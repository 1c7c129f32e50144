package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"topoconf/internal/domain"
	"topoconf/internal/repository"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database
const MemoryDSN = ":memory:"

// Journal implements repository.RevisionLog using SQLite
type Journal struct {
	db         *sql.DB
	maxEntries int
}

// New opens the journal at dsn. maxEntries bounds the number of retained
// revisions; zero or less keeps everything.
func New(dsn string, maxEntries int) (*Journal, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database
	db.SetMaxOpenConns(1)

	j := &Journal{db: db, maxEntries: maxEntries}
	if err := j.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return j, nil
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS revisions (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		action TEXT NOT NULL,
		checksum TEXT NOT NULL DEFAULT '',
		record_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_revisions_action ON revisions(action);
	`

	_, err := j.db.Exec(schema)
	return err
}

// Append stores a revision and prunes the oldest entries beyond the retention limit
func (j *Journal) Append(ctx context.Context, rev *domain.Revision) error {
	args, err := revisionInsertArgs(rev)
	if err != nil {
		return err
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO revisions (`+revisionColumns+`)
		VALUES (?, ?, ?, ?, ?)
	`, args...); err != nil {
		return fmt.Errorf("failed to insert revision: %w", err)
	}

	if j.maxEntries > 0 {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM revisions WHERE seq NOT IN (
				SELECT seq FROM revisions ORDER BY seq DESC LIMIT ?
			)
		`, j.maxEntries); err != nil {
			return fmt.Errorf("failed to prune revisions: %w", err)
		}
	}

	return tx.Commit()
}

// List returns up to limit revisions, newest first. limit <= 0 returns all.
func (j *Journal) List(ctx context.Context, limit int) ([]domain.Revision, error) {
	query := `SELECT ` + revisionColumns + ` FROM revisions ORDER BY seq DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query revisions: %w", err)
	}
	defer rows.Close()

	revisions := make([]domain.Revision, 0)
	for rows.Next() {
		var row revisionRow
		if err := rows.Scan(row.scanArgs()...); err != nil {
			return nil, fmt.Errorf("failed to scan revision: %w", err)
		}
		rev, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		revisions = append(revisions, *rev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating revisions: %w", err)
	}

	return revisions, nil
}

// Count returns the number of retained revisions
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM revisions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count revisions: %w", err)
	}
	return n, nil
}

// Close closes the database connection
func (j *Journal) Close() error {
	return j.db.Close()
}

var _ repository.RevisionLog = (*Journal)(nil)
