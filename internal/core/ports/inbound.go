package ports

import (
	"context"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// AnalysisRunner is the inbound contract for running the full pipeline on
// one submission. A run that fails inside the pipeline still returns a
// well-formed report with status=failed; the error is non-nil only for
// failures around the run itself.
type AnalysisRunner interface {
	RunAnalysis(ctx context.Context, submissionID string) (*domain.AnalysisReport, error)
}

// ReportReader is the inbound read model for finished and in-flight reports.
type ReportReader interface {
	GetReport(ctx context.Context, submissionID string) (*domain.AnalysisReport, error)
}

// TimelinessService re-derives the deadline classification for a submission
// from its stored inputs.
type TimelinessService interface {
	GetTimeliness(ctx context.Context, submissionID string) (*domain.TimelinessResult, error)
}

// GrowthService compares the two most recent snapshots of a submission's
// document identity.
type GrowthService interface {
	GetContributionGrowth(ctx context.Context, submissionID string) (*domain.ContributionGrowth, error)
}

// AnalysisService is the full inbound surface of the pipeline.
type AnalysisService interface {
	AnalysisRunner
	ReportReader
	TimelinessService
	GrowthService
}
