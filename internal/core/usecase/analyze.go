package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/metadoclabs/insights/internal/core/domain"
	"github.com/metadoclabs/insights/internal/core/ports"
)

// AnalyzeSubmissionUseCase runs the full analysis pipeline for one
// submission: extraction, statistics, completeness, snapshot capture,
// timeliness, local text analysis, optional qualitative review, and
// consolidation. Only extraction failure aborts a run; every later stage
// degrades into a report note.
type AnalyzeSubmissionUseCase struct {
	submissions ports.SubmissionStore
	reports     ports.ReportRepository
	deadlines   ports.DeadlineStore
	rubrics     ports.RubricStore
	storage     ports.ObjectStorage
	extractor   ports.DocumentExtractor
	analyzer    ports.TextAnalyzer
	reviewer    ports.Reviewer
	classifier  *TimelinessClassifier
	tracker     *SnapshotTracker
	policy      CompletenessPolicy
}

func NewAnalyzeSubmissionUseCase(
	submissions ports.SubmissionStore,
	reports ports.ReportRepository,
	deadlines ports.DeadlineStore,
	rubrics ports.RubricStore,
	storage ports.ObjectStorage,
	extractor ports.DocumentExtractor,
	analyzer ports.TextAnalyzer,
	reviewer ports.Reviewer,
	classifier *TimelinessClassifier,
	tracker *SnapshotTracker,
	policy CompletenessPolicy,
) *AnalyzeSubmissionUseCase {
	return &AnalyzeSubmissionUseCase{
		submissions: submissions,
		reports:     reports,
		deadlines:   deadlines,
		rubrics:     rubrics,
		storage:     storage,
		extractor:   extractor,
		analyzer:    analyzer,
		reviewer:    reviewer,
		classifier:  classifier,
		tracker:     tracker,
		policy:      policy,
	}
}

func (uc *AnalyzeSubmissionUseCase) RunAnalysis(ctx context.Context, submissionID string) (*domain.AnalysisReport, error) {
	sub, err := uc.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch submission: %w", err)
	}

	report, err := uc.reports.CreateIfAbsent(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}
	if report.Status == domain.StatusProcessing {
		return nil, domain.WrapError(domain.ErrAlreadyProcessing, "run analysis",
			fmt.Errorf("submission %s", submissionID))
	}
	if report.Status.IsTerminal() {
		if err := uc.reports.ResetPending(ctx, submissionID); err != nil {
			return nil, fmt.Errorf("reset report: %w", err)
		}
		report = resetDerived(report)
	}
	if err := uc.reports.Claim(ctx, submissionID); err != nil {
		return nil, fmt.Errorf("claim report: %w", err)
	}
	report.Status = domain.StatusProcessing

	started := time.Now()
	result := uc.runPipeline(ctx, sub, report)
	result.ProcessingSeconds = time.Since(started).Seconds()
	result.UpdatedAt = time.Now().UTC()

	if err := uc.reports.SaveResult(ctx, result); err != nil {
		return nil, fmt.Errorf("save analysis result: %w", err)
	}
	return result, nil
}

// analysisVersion tags every saved report so stored results from older
// pipeline revisions can be told apart.
const analysisVersion = "1.0"

func (uc *AnalyzeSubmissionUseCase) runPipeline(ctx context.Context, sub *domain.Submission, report *domain.AnalysisReport) *domain.AnalysisReport {
	report.AnalysisVersion = analysisVersion

	extraction, err := uc.extractor.Extract(ctx, sub)
	if err != nil {
		report.Status = domain.StatusFailed
		report.ErrorMessage = err.Error()
		return report
	}
	report.Metadata = &extraction.Metadata
	report.DocumentText = extraction.Text
	report.Notes = append(report.Notes, extraction.Notes...)

	stats := ComputeContentStatistics(extraction.Text)
	report.Statistics = &stats

	complete, warnings := uc.policy.Validate(stats)
	report.IsComplete = complete
	report.ValidationWarnings = warnings

	uc.captureSnapshot(ctx, sub, report)
	deadline := uc.classifyTimeliness(ctx, sub, report)
	uc.analyzeText(ctx, report, extraction.Text)
	uc.runReview(ctx, sub, deadline, report, extraction.Text)
	report.Consolidated = Consolidate(report.TextAnalysis, report.Review)

	if len(report.ValidationWarnings) > 0 {
		report.Status = domain.StatusWarning
	} else {
		report.Status = domain.StatusCompleted
	}
	report.ErrorMessage = ""
	return report
}

func (uc *AnalyzeSubmissionUseCase) captureSnapshot(ctx context.Context, sub *domain.Submission, report *domain.AnalysisReport) {
	hash, err := uc.contentHash(ctx, sub)
	if err != nil {
		report.Notes = append(report.Notes, "snapshot skipped: "+err.Error())
		return
	}
	snapshot, err := uc.tracker.Capture(ctx, sub, report.Statistics.WordCount, hash)
	if err != nil {
		report.Notes = append(report.Notes, "snapshot capture failed: "+err.Error())
		return
	}
	report.ContributionGrowthPct = snapshot.ChangePercentage
}

func (uc *AnalyzeSubmissionUseCase) classifyTimeliness(ctx context.Context, sub *domain.Submission, report *domain.AnalysisReport) *domain.Deadline {
	var deadline *domain.Deadline
	if sub.DeadlineID != "" {
		loaded, err := uc.deadlines.GetByID(ctx, sub.DeadlineID)
		if err != nil {
			report.Notes = append(report.Notes, "deadline lookup failed: "+err.Error())
		} else {
			deadline = loaded
		}
	}
	result := uc.classifier.Classify(EffectiveSubmissionTime(report.Metadata, sub.ReceivedAt), deadline)
	report.Timeliness = &result
	return deadline
}

func (uc *AnalyzeSubmissionUseCase) analyzeText(ctx context.Context, report *domain.AnalysisReport, text string) {
	analysis, err := uc.analyzer.Analyze(ctx, text)
	if err != nil {
		report.Notes = append(report.Notes, "text analysis failed: "+err.Error())
		return
	}
	report.TextAnalysis = analysis
}

func (uc *AnalyzeSubmissionUseCase) runReview(ctx context.Context, sub *domain.Submission, deadline *domain.Deadline, report *domain.AnalysisReport, text string) {
	if uc.reviewer == nil {
		return
	}
	rubric := uc.loadRubric(ctx, sub, deadline, report)
	review, err := uc.reviewer.Review(ctx, text, rubric)
	if err != nil {
		report.Notes = append(report.Notes, "qualitative review unavailable: "+err.Error())
		return
	}
	report.Review = review
}

func (uc *AnalyzeSubmissionUseCase) loadRubric(ctx context.Context, sub *domain.Submission, deadline *domain.Deadline, report *domain.AnalysisReport) *domain.Rubric {
	rubricID := sub.RubricID
	if rubricID == "" && deadline != nil {
		rubricID = deadline.RubricID
	}
	if rubricID == "" {
		return nil
	}
	rubric, err := uc.rubrics.GetByID(ctx, rubricID)
	if err != nil {
		report.Notes = append(report.Notes, "rubric lookup failed: "+err.Error())
		return nil
	}
	return rubric
}

// contentHash prefers the intake-computed hash and falls back to hashing
// the stored object.
func (uc *AnalyzeSubmissionUseCase) contentHash(ctx context.Context, sub *domain.Submission) (string, error) {
	if sub.ContentHash != "" {
		return sub.ContentHash, nil
	}
	reader, err := uc.storage.Open(ctx, sub.StoragePath)
	if err != nil {
		return "", fmt.Errorf("open stored document: %w", err)
	}
	defer reader.Close()

	digest := sha256.New()
	if _, err := io.Copy(digest, reader); err != nil {
		return "", fmt.Errorf("hash stored document: %w", err)
	}
	return hex.EncodeToString(digest.Sum(nil)), nil
}

func (uc *AnalyzeSubmissionUseCase) GetReport(ctx context.Context, submissionID string) (*domain.AnalysisReport, error) {
	report, err := uc.reports.GetBySubmissionID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch report: %w", err)
	}
	return report, nil
}

func (uc *AnalyzeSubmissionUseCase) GetTimeliness(ctx context.Context, submissionID string) (*domain.TimelinessResult, error) {
	sub, err := uc.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch submission: %w", err)
	}

	var meta *domain.DocumentMetadata
	report, err := uc.reports.GetBySubmissionID(ctx, submissionID)
	switch {
	case err == nil:
		meta = report.Metadata
	case domain.IsKind(err, domain.ErrReportNotFound):
		// Classification still works from the receipt time alone.
	default:
		return nil, fmt.Errorf("fetch report: %w", err)
	}

	var deadline *domain.Deadline
	if sub.DeadlineID != "" {
		deadline, err = uc.deadlines.GetByID(ctx, sub.DeadlineID)
		if err != nil {
			return nil, fmt.Errorf("fetch deadline: %w", err)
		}
	}

	result := uc.classifier.Classify(EffectiveSubmissionTime(meta, sub.ReceivedAt), deadline)
	return &result, nil
}

func (uc *AnalyzeSubmissionUseCase) GetContributionGrowth(ctx context.Context, submissionID string) (*domain.ContributionGrowth, error) {
	sub, err := uc.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, fmt.Errorf("fetch submission: %w", err)
	}
	hash, err := uc.contentHash(ctx, sub)
	if err != nil {
		return nil, domain.WrapError(domain.ErrInvalidInput, "derive document identity", err)
	}
	return uc.tracker.Growth(ctx, IdentityKey(sub.Filename, hash))
}

// resetDerived clears everything a previous run produced while keeping the
// report's identity and creation time.
func resetDerived(report *domain.AnalysisReport) *domain.AnalysisReport {
	return &domain.AnalysisReport{
		ID:           report.ID,
		SubmissionID: report.SubmissionID,
		Status:       domain.StatusPending,
		CreatedAt:    report.CreatedAt,
	}
}

var _ ports.AnalysisService = (*AnalyzeSubmissionUseCase)(nil)
