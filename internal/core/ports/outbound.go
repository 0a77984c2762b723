package ports

import (
	"context"
	"io"
	"io/fs"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// SubmissionStore reads intake-owned submission records. Register exists
// for the one-shot CLI and for tests; the service itself never writes.
type SubmissionStore interface {
	GetByID(ctx context.Context, id string) (*domain.Submission, error)
	Register(ctx context.Context, sub *domain.Submission) error
}

// ReportRepository persists analysis reports and drives the status machine.
type ReportRepository interface {
	CreateIfAbsent(ctx context.Context, submissionID string) (*domain.AnalysisReport, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (*domain.AnalysisReport, error)
	// Claim flips pending -> processing; any other current status yields
	// ErrAlreadyProcessing.
	Claim(ctx context.Context, submissionID string) error
	// ResetPending rewinds a terminal report to pending and clears its
	// derived sections so a rerun starts clean.
	ResetPending(ctx context.Context, submissionID string) error
	SaveResult(ctx context.Context, report *domain.AnalysisReport) error
}

// SnapshotCompare fills the change fields of next given the latest prior
// snapshot of the same identity; prev is nil for the first capture.
type SnapshotCompare func(prev *domain.Snapshot, next *domain.Snapshot)

// SnapshotStore is the append-only version history. Capture serializes
// read-then-append per identity key.
type SnapshotStore interface {
	Capture(ctx context.Context, snap *domain.Snapshot, compare SnapshotCompare) (*domain.Snapshot, error)
	Latest(ctx context.Context, identityKey string) (*domain.Snapshot, error)
	LatestTwo(ctx context.Context, identityKey string) (cur *domain.Snapshot, prev *domain.Snapshot, err error)
	History(ctx context.Context, identityKey string) ([]domain.Snapshot, error)
}

// DeadlineStore reads deadline definitions owned by the course tooling.
type DeadlineStore interface {
	GetByID(ctx context.Context, id string) (*domain.Deadline, error)
}

// RubricStore reads rubric definitions owned by the course tooling.
type RubricStore interface {
	GetByID(ctx context.Context, id string) (*domain.Rubric, error)
}

// ObjectStorage stores source documents.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Stat(ctx context.Context, key string) (fs.FileInfo, error)
}

// MessageQueue publishes/consumes analysis-requested events.
type MessageQueue interface {
	PublishAnalysisRequested(ctx context.Context, submissionID string) error
	SubscribeAnalysisRequested(ctx context.Context, handler func(context.Context, string) error) error
}

// DocumentExtractor runs the layered metadata and text extraction for a
// stored submission. A non-nil error means the document is unreadable.
type DocumentExtractor interface {
	Extract(ctx context.Context, sub *domain.Submission) (*domain.Extraction, error)
}

// TextAnalyzer computes the local heuristic analysis of extracted text.
type TextAnalyzer interface {
	Analyze(ctx context.Context, text string) (*domain.LocalTextAnalysis, error)
}

// Reviewer produces the optional model-backed qualitative review. A nil
// rubric requests the free-form review.
type Reviewer interface {
	Review(ctx context.Context, text string, rubric *domain.Rubric) (*domain.QualitativeReview, error)
}
