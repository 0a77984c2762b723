package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/metadoclabs/insights/internal/core/domain"
)

type SubmissionRepository struct {
	db *sql.DB
}

func NewSubmissionRepository(db *sql.DB) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083103)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS submissions (
	id TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	storage_path TEXT NOT NULL,
	content_hash TEXT NOT NULL DEFAULT '',
	received_at TIMESTAMPTZ NOT NULL,
	deadline_id TEXT NOT NULL DEFAULT '',
	rubric_id TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_submissions_received_at ON submissions(received_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *SubmissionRepository) GetByID(ctx context.Context, id string) (*domain.Submission, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, filename, storage_path, content_hash, received_at, deadline_id, rubric_id
FROM submissions
WHERE id = $1
`, id)

	var submission domain.Submission
	err := row.Scan(
		&submission.ID, &submission.Filename, &submission.StoragePath, &submission.ContentHash,
		&submission.ReceivedAt, &submission.DeadlineID, &submission.RubricID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrSubmissionNotFound, "get submission", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan submission: %w", err)
	}
	return &submission, nil
}

func (r *SubmissionRepository) Register(ctx context.Context, submission *domain.Submission) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO submissions (id, filename, storage_path, content_hash, received_at, deadline_id, rubric_id)
VALUES ($1, $2, $3, $4, $5, $6, $7)
ON CONFLICT (id) DO UPDATE SET
	filename = EXCLUDED.filename,
	storage_path = EXCLUDED.storage_path,
	content_hash = EXCLUDED.content_hash,
	received_at = EXCLUDED.received_at,
	deadline_id = EXCLUDED.deadline_id,
	rubric_id = EXCLUDED.rubric_id
`, submission.ID, submission.Filename, submission.StoragePath, submission.ContentHash,
		submission.ReceivedAt, submission.DeadlineID, submission.RubricID)
	if err != nil {
		return fmt.Errorf("register submission: %w", err)
	}
	return nil
}
