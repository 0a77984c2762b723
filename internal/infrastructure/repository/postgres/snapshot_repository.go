package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/metadoclabs/insights/internal/core/domain"
	"github.com/metadoclabs/insights/internal/core/ports"
)

type SnapshotRepository struct {
	db *sql.DB
}

func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

func (r *SnapshotRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083102)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS document_snapshots (
	id TEXT PRIMARY KEY,
	identity_key TEXT NOT NULL,
	submission_id TEXT NOT NULL,
	word_count INTEGER NOT NULL,
	content_hash TEXT NOT NULL,
	captured_at TIMESTAMPTZ NOT NULL,
	change_percentage DOUBLE PRECISION,
	is_major_change BOOLEAN NOT NULL DEFAULT FALSE,
	contribution_type TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_document_snapshots_identity ON document_snapshots(identity_key, captured_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

// Capture appends a snapshot to its identity chain. The read of the previous
// snapshot and the insert happen under a per-identity advisory lock so that
// two workers processing the same document cannot both compare against the
// same predecessor.
func (r *SnapshotRepository) Capture(ctx context.Context, snapshot *domain.Snapshot, compare ports.SnapshotCompare) (*domain.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin snapshot tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, snapshot.IdentityKey); err != nil {
		return nil, fmt.Errorf("acquire identity lock: %w", err)
	}

	previous, err := scanLatest(tx.QueryRowContext(ctx, latestSnapshotQuery, snapshot.IdentityKey))
	if err != nil {
		return nil, err
	}

	if compare != nil {
		compare(previous, snapshot)
	}

	_, err = tx.ExecContext(ctx, `
INSERT INTO document_snapshots (id, identity_key, submission_id, word_count, content_hash,
	captured_at, change_percentage, is_major_change, contribution_type)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
`, snapshot.ID, snapshot.IdentityKey, snapshot.SubmissionID, snapshot.WordCount, snapshot.ContentHash,
		snapshot.CapturedAt, snapshot.ChangePercentage, snapshot.IsMajorChange, snapshot.ContributionType)
	if err != nil {
		return nil, fmt.Errorf("insert snapshot: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit snapshot tx: %w", err)
	}
	return snapshot, nil
}

const latestSnapshotQuery = `
SELECT id, identity_key, submission_id, word_count, content_hash, captured_at,
	change_percentage, is_major_change, contribution_type
FROM document_snapshots
WHERE identity_key = $1
ORDER BY captured_at DESC, id DESC
LIMIT 1
`

func (r *SnapshotRepository) Latest(ctx context.Context, identityKey string) (*domain.Snapshot, error) {
	return scanLatest(r.db.QueryRowContext(ctx, latestSnapshotQuery, identityKey))
}

func (r *SnapshotRepository) LatestTwo(ctx context.Context, identityKey string) (*domain.Snapshot, *domain.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, identity_key, submission_id, word_count, content_hash, captured_at,
	change_percentage, is_major_change, contribution_type
FROM document_snapshots
WHERE identity_key = $1
ORDER BY captured_at DESC, id DESC
LIMIT 2
`, identityKey)
	if err != nil {
		return nil, nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots, err := collectSnapshots(rows)
	if err != nil {
		return nil, nil, err
	}
	switch len(snapshots) {
	case 0:
		return nil, nil, nil
	case 1:
		return &snapshots[0], nil, nil
	default:
		return &snapshots[0], &snapshots[1], nil
	}
}

func (r *SnapshotRepository) History(ctx context.Context, identityKey string) ([]domain.Snapshot, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, identity_key, submission_id, word_count, content_hash, captured_at,
	change_percentage, is_major_change, contribution_type
FROM document_snapshots
WHERE identity_key = $1
ORDER BY captured_at ASC, id ASC
`, identityKey)
	if err != nil {
		return nil, fmt.Errorf("query snapshot history: %w", err)
	}
	defer rows.Close()

	return collectSnapshots(rows)
}

func scanLatest(row *sql.Row) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	err := row.Scan(
		&snapshot.ID, &snapshot.IdentityKey, &snapshot.SubmissionID, &snapshot.WordCount,
		&snapshot.ContentHash, &snapshot.CapturedAt, &snapshot.ChangePercentage,
		&snapshot.IsMajorChange, &snapshot.ContributionType,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan snapshot: %w", err)
	}
	return &snapshot, nil
}

func collectSnapshots(rows *sql.Rows) ([]domain.Snapshot, error) {
	var snapshots []domain.Snapshot
	for rows.Next() {
		var snapshot domain.Snapshot
		err := rows.Scan(
			&snapshot.ID, &snapshot.IdentityKey, &snapshot.SubmissionID, &snapshot.WordCount,
			&snapshot.ContentHash, &snapshot.CapturedAt, &snapshot.ChangePercentage,
			&snapshot.IsMajorChange, &snapshot.ContributionType,
		)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return snapshots, nil
}
