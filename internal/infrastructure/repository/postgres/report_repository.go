package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/metadoclabs/insights/internal/core/domain"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *ReportRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026083101)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS analysis_reports (
	id TEXT PRIMARY KEY,
	submission_id TEXT NOT NULL UNIQUE,
	status TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	metadata JSONB,
	statistics JSONB,
	timeliness JSONB,
	text_analysis JSONB,
	review JSONB,
	consolidated JSONB,
	is_complete BOOLEAN NOT NULL DEFAULT FALSE,
	validation_warnings JSONB NOT NULL DEFAULT '[]'::jsonb,
	notes JSONB NOT NULL DEFAULT '[]'::jsonb,
	document_text TEXT NOT NULL DEFAULT '',
	timeliness_classification TEXT NOT NULL DEFAULT '',
	contribution_growth_pct DOUBLE PRECISION,
	analysis_version TEXT NOT NULL DEFAULT '',
	processing_seconds DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_analysis_reports_status ON analysis_reports(status);
CREATE INDEX IF NOT EXISTS idx_analysis_reports_updated_at ON analysis_reports(updated_at DESC);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *ReportRepository) CreateIfAbsent(ctx context.Context, submissionID string) (*domain.AnalysisReport, error) {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `
INSERT INTO analysis_reports (id, submission_id, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (submission_id) DO NOTHING
`, uuid.NewString(), submissionID, string(domain.StatusPending), now)
	if err != nil {
		return nil, fmt.Errorf("insert report: %w", err)
	}
	return r.GetBySubmissionID(ctx, submissionID)
}

func (r *ReportRepository) GetBySubmissionID(ctx context.Context, submissionID string) (*domain.AnalysisReport, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, submission_id, status, error_message, metadata, statistics, timeliness,
	text_analysis, review, consolidated, is_complete, validation_warnings, notes,
	document_text, contribution_growth_pct, analysis_version,
	processing_seconds, created_at, updated_at
FROM analysis_reports
WHERE submission_id = $1
`, submissionID)

	var report domain.AnalysisReport
	var status string
	var metadataRaw, statisticsRaw, timelinessRaw, analysisRaw, reviewRaw, consolidatedRaw, warningsRaw, notesRaw []byte

	err := row.Scan(
		&report.ID, &report.SubmissionID, &status, &report.ErrorMessage,
		&metadataRaw, &statisticsRaw, &timelinessRaw, &analysisRaw, &reviewRaw, &consolidatedRaw,
		&report.IsComplete, &warningsRaw, &notesRaw,
		&report.DocumentText, &report.ContributionGrowthPct, &report.AnalysisVersion,
		&report.ProcessingSeconds, &report.CreatedAt, &report.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.WrapError(domain.ErrReportNotFound, "get report", fmt.Errorf("submission %s", submissionID))
		}
		return nil, fmt.Errorf("scan report: %w", err)
	}
	report.Status = domain.ReportStatus(status)

	for _, section := range []struct {
		raw []byte
		out any
	}{
		{metadataRaw, &report.Metadata},
		{statisticsRaw, &report.Statistics},
		{timelinessRaw, &report.Timeliness},
		{analysisRaw, &report.TextAnalysis},
		{reviewRaw, &report.Review},
		{consolidatedRaw, &report.Consolidated},
		{warningsRaw, &report.ValidationWarnings},
		{notesRaw, &report.Notes},
	} {
		if len(section.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(section.raw, section.out); err != nil {
			return nil, fmt.Errorf("unmarshal report section: %w", err)
		}
	}
	return &report, nil
}

func (r *ReportRepository) Claim(ctx context.Context, submissionID string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE analysis_reports
SET status = $2, updated_at = $3
WHERE submission_id = $1 AND status = $4
`, submissionID, string(domain.StatusProcessing), time.Now().UTC(), string(domain.StatusPending))
	if err != nil {
		return fmt.Errorf("claim report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("claim report rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrAlreadyProcessing, "claim report", fmt.Errorf("submission %s", submissionID))
	}
	return nil
}

func (r *ReportRepository) ResetPending(ctx context.Context, submissionID string) error {
	result, err := r.db.ExecContext(ctx, `
UPDATE analysis_reports
SET status = $2, error_message = '', metadata = NULL, statistics = NULL,
	timeliness = NULL, text_analysis = NULL, review = NULL, consolidated = NULL,
	is_complete = FALSE, validation_warnings = '[]'::jsonb, notes = '[]'::jsonb,
	document_text = '', timeliness_classification = '', contribution_growth_pct = NULL,
	analysis_version = '', processing_seconds = 0, updated_at = $3
WHERE submission_id = $1 AND status IN ($4, $5, $6)
`, submissionID, string(domain.StatusPending), time.Now().UTC(),
		string(domain.StatusCompleted), string(domain.StatusWarning), string(domain.StatusFailed))
	if err != nil {
		return fmt.Errorf("reset report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("reset report rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrAlreadyProcessing, "reset report", fmt.Errorf("submission %s", submissionID))
	}
	return nil
}

func (r *ReportRepository) SaveResult(ctx context.Context, report *domain.AnalysisReport) error {
	metadataJSON, err := marshalSection(report.Metadata)
	if err != nil {
		return err
	}
	statisticsJSON, err := marshalSection(report.Statistics)
	if err != nil {
		return err
	}
	timelinessJSON, err := marshalSection(report.Timeliness)
	if err != nil {
		return err
	}
	analysisJSON, err := marshalSection(report.TextAnalysis)
	if err != nil {
		return err
	}
	reviewJSON, err := marshalSection(report.Review)
	if err != nil {
		return err
	}
	consolidatedJSON, err := marshalSection(report.Consolidated)
	if err != nil {
		return err
	}
	warningsJSON, err := json.Marshal(emptyIfNil(report.ValidationWarnings))
	if err != nil {
		return fmt.Errorf("marshal warnings: %w", err)
	}
	notesJSON, err := json.Marshal(emptyIfNil(report.Notes))
	if err != nil {
		return fmt.Errorf("marshal notes: %w", err)
	}

	// The classification is duplicated into its own column so dashboards can
	// filter without unpacking the timeliness JSON.
	classification := ""
	if report.Timeliness != nil {
		classification = string(report.Timeliness.Classification)
	}

	result, err := r.db.ExecContext(ctx, `
UPDATE analysis_reports
SET status = $2, error_message = $3, metadata = $4, statistics = $5, timeliness = $6,
	text_analysis = $7, review = $8, consolidated = $9, is_complete = $10,
	validation_warnings = $11, notes = $12, document_text = $13,
	timeliness_classification = $14, contribution_growth_pct = $15,
	analysis_version = $16, processing_seconds = $17, updated_at = $18
WHERE submission_id = $1
`, report.SubmissionID, string(report.Status), report.ErrorMessage,
		metadataJSON, statisticsJSON, timelinessJSON, analysisJSON, reviewJSON, consolidatedJSON,
		report.IsComplete, warningsJSON, notesJSON, report.DocumentText,
		classification, report.ContributionGrowthPct,
		report.AnalysisVersion, report.ProcessingSeconds, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save report rows: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrReportNotFound, "save report", fmt.Errorf("submission %s", report.SubmissionID))
	}
	return nil
}

// marshalSection keeps absent sections as SQL NULL instead of the JSON
// literal null.
func marshalSection[T any](section *T) ([]byte, error) {
	if section == nil {
		return nil, nil
	}
	data, err := json.Marshal(section)
	if err != nil {
		return nil, fmt.Errorf("marshal report section: %w", err)
	}
	return data, nil
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
