package usecase

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/metadoclabs/insights/internal/core/domain"
	"github.com/metadoclabs/insights/internal/core/ports"
)

// SnapshotTracker appends version snapshots and answers growth queries.
type SnapshotTracker struct {
	snapshots      ports.SnapshotStore
	majorThreshold float64
}

func NewSnapshotTracker(snapshots ports.SnapshotStore, majorThresholdPct float64) *SnapshotTracker {
	if majorThresholdPct <= 0 {
		majorThresholdPct = 50
	}
	return &SnapshotTracker{snapshots: snapshots, majorThreshold: majorThresholdPct}
}

// IdentityKey builds the stable document identity a snapshot history hangs
// off: sanitized filename plus the first 8 hex chars of the content hash,
// so renamed or separately-submitted copies track independently.
func IdentityKey(filename, contentHash string) string {
	prefix := contentHash
	if len(prefix) > 8 {
		prefix = prefix[:8]
	}
	return sanitizeIdentity(filename) + "_" + prefix
}

func sanitizeIdentity(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document"
	}
	return base
}

// Capture appends a snapshot for the submission, comparing against the
// latest prior version of the same identity.
func (t *SnapshotTracker) Capture(ctx context.Context, sub *domain.Submission, wordCount int, contentHash string) (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		ID:           uuid.NewString(),
		IdentityKey:  IdentityKey(sub.Filename, contentHash),
		SubmissionID: sub.ID,
		WordCount:    wordCount,
		ContentHash:  contentHash,
		CapturedAt:   time.Now().UTC(),
	}
	captured, err := t.snapshots.Capture(ctx, snap, t.compare)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}
	return captured, nil
}

func (t *SnapshotTracker) compare(prev, next *domain.Snapshot) {
	if prev == nil {
		return
	}
	pct := GrowthPercentage(prev.WordCount, next.WordCount)
	next.ChangePercentage = &pct
	next.IsMajorChange = math.Abs(pct) >= t.majorThreshold
	next.ContributionType = ContributionType(pct)
}

// GrowthPercentage computes word-count growth relative to the previous
// version. Growth from an empty previous version counts as 100% when any
// words were added and 0% otherwise.
func GrowthPercentage(prevWords, newWords int) float64 {
	switch {
	case prevWords > 0:
		return round2(float64(newWords-prevWords) / float64(prevWords) * 100)
	case newWords > 0:
		return 100
	default:
		return 0
	}
}

func ContributionType(pct float64) string {
	abs := math.Abs(pct)
	switch {
	case abs >= 100:
		return domain.ContributionCompleteRewrite
	case abs >= 50:
		return domain.ContributionMajorRevision
	case abs >= 20:
		return domain.ContributionSignificant
	case abs >= 10:
		return domain.ContributionModerate
	case abs >= 5:
		return domain.ContributionMinor
	default:
		return domain.ContributionMinimal
	}
}

// Growth reports how the latest snapshot of an identity compares with the
// one before it.
func (t *SnapshotTracker) Growth(ctx context.Context, identityKey string) (*domain.ContributionGrowth, error) {
	cur, prev, err := t.snapshots.LatestTwo(ctx, identityKey)
	if err != nil {
		return nil, fmt.Errorf("load snapshot history: %w", err)
	}
	if cur == nil {
		return &domain.ContributionGrowth{Message: "No version history available"}, nil
	}
	if prev == nil {
		return &domain.ContributionGrowth{
			CurrentWordCount: cur.WordCount,
			Message:          "No prior version available for comparison",
		}, nil
	}

	pct := GrowthPercentage(prev.WordCount, cur.WordCount)
	prevWords := prev.WordCount
	return &domain.ContributionGrowth{
		HasComparison:     true,
		CurrentWordCount:  cur.WordCount,
		PreviousWordCount: &prevWords,
		WordCountChange:   cur.WordCount - prev.WordCount,
		ChangePercentage:  &pct,
		IsMajorChange:     math.Abs(pct) >= t.majorThreshold,
		ContributionType:  ContributionType(pct),
	}, nil
}
