package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/metadoclabs/insights/internal/core/domain"
)

type DeadlineRepository struct {
	db *sql.DB
}

func NewDeadlineRepository(db *sql.DB) *DeadlineRepository {
	return &DeadlineRepository{db: db}
}

func (r *DeadlineRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083104)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	// due_at is a wall-clock time interpreted in the row's timezone column,
	// so it is stored without a zone on purpose.
	const query = `
CREATE TABLE IF NOT EXISTS deadlines (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	due_at TIMESTAMP NOT NULL,
	timezone TEXT NOT NULL DEFAULT 'UTC',
	rubric_id TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS rubrics (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	criteria JSONB NOT NULL DEFAULT '[]'::jsonb
);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *DeadlineRepository) GetByID(ctx context.Context, id string) (*domain.Deadline, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, description, due_at, timezone, rubric_id
FROM deadlines
WHERE id = $1
`, id)

	var deadline domain.Deadline
	err := row.Scan(
		&deadline.ID, &deadline.Title, &deadline.Description,
		&deadline.DueAt, &deadline.Timezone, &deadline.RubricID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrInvalidInput, "get deadline", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan deadline: %w", err)
	}
	return &deadline, nil
}

type RubricRepository struct {
	db *sql.DB
}

func NewRubricRepository(db *sql.DB) *RubricRepository {
	return &RubricRepository{db: db}
}

func (r *RubricRepository) GetByID(ctx context.Context, id string) (*domain.Rubric, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, title, criteria
FROM rubrics
WHERE id = $1
`, id)

	var rubric domain.Rubric
	var criteriaRaw []byte
	if err := row.Scan(&rubric.ID, &rubric.Title, &criteriaRaw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrInvalidInput, "get rubric", fmt.Errorf("id %s", id))
		}
		return nil, fmt.Errorf("scan rubric: %w", err)
	}
	if len(criteriaRaw) > 0 {
		if err := json.Unmarshal(criteriaRaw, &rubric.Criteria); err != nil {
			return nil, fmt.Errorf("unmarshal rubric criteria: %w", err)
		}
	}
	return &rubric, nil
}
