package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/metadoclabs/insights/internal/core/domain"
	"github.com/metadoclabs/insights/internal/core/ports"
)

type snapshotStoreFake struct {
	byIdentity map[string][]domain.Snapshot
	captureErr error
}

func newSnapshotStoreFake() *snapshotStoreFake {
	return &snapshotStoreFake{byIdentity: make(map[string][]domain.Snapshot)}
}

func (f *snapshotStoreFake) Capture(_ context.Context, snap *domain.Snapshot, compare ports.SnapshotCompare) (*domain.Snapshot, error) {
	if f.captureErr != nil {
		return nil, f.captureErr
	}
	history := f.byIdentity[snap.IdentityKey]
	var prev *domain.Snapshot
	if len(history) > 0 {
		prev = &history[len(history)-1]
	}
	compare(prev, snap)
	f.byIdentity[snap.IdentityKey] = append(history, *snap)
	return snap, nil
}

func (f *snapshotStoreFake) Latest(_ context.Context, identityKey string) (*domain.Snapshot, error) {
	history := f.byIdentity[identityKey]
	if len(history) == 0 {
		return nil, nil
	}
	latest := history[len(history)-1]
	return &latest, nil
}

func (f *snapshotStoreFake) LatestTwo(_ context.Context, identityKey string) (*domain.Snapshot, *domain.Snapshot, error) {
	history := f.byIdentity[identityKey]
	switch len(history) {
	case 0:
		return nil, nil, nil
	case 1:
		cur := history[0]
		return &cur, nil, nil
	default:
		cur := history[len(history)-1]
		prev := history[len(history)-2]
		return &cur, &prev, nil
	}
}

func (f *snapshotStoreFake) History(_ context.Context, identityKey string) ([]domain.Snapshot, error) {
	return f.byIdentity[identityKey], nil
}

func TestGrowthPercentage(t *testing.T) {
	if got := GrowthPercentage(200, 300); got != 50 {
		t.Fatalf("GrowthPercentage(200, 300) = %v, want 50", got)
	}
	if got := GrowthPercentage(0, 120); got != 100 {
		t.Fatalf("GrowthPercentage(0, 120) = %v, want 100", got)
	}
	if got := GrowthPercentage(0, 0); got != 0 {
		t.Fatalf("GrowthPercentage(0, 0) = %v, want 0", got)
	}
	if got := GrowthPercentage(300, 200); got != -33.33 {
		t.Fatalf("GrowthPercentage(300, 200) = %v, want -33.33", got)
	}
}

func TestContributionTypeBuckets(t *testing.T) {
	cases := map[float64]string{
		150: domain.ContributionCompleteRewrite,
		100: domain.ContributionCompleteRewrite,
		-60: domain.ContributionMajorRevision,
		25:  domain.ContributionSignificant,
		12:  domain.ContributionModerate,
		7:   domain.ContributionMinor,
		2:   domain.ContributionMinimal,
	}
	for pct, want := range cases {
		if got := ContributionType(pct); got != want {
			t.Fatalf("ContributionType(%v) = %q, want %q", pct, got, want)
		}
	}
}

func TestIdentityKeyStableAndSanitized(t *testing.T) {
	key := IdentityKey("my essay v2.docx", "abcdef0123456789")
	if key != "my_essay_v2.docx_abcdef01" {
		t.Fatalf("IdentityKey = %q", key)
	}
	if IdentityKey("my essay v2.docx", "abcdef0123456789") != key {
		t.Fatalf("identity key must be deterministic")
	}
	if short := IdentityKey("a.docx", "ab12"); short != "a.docx_ab12" {
		t.Fatalf("short hash key = %q", short)
	}
}

func TestCaptureFirstSnapshotHasNoComparison(t *testing.T) {
	store := newSnapshotStoreFake()
	tracker := NewSnapshotTracker(store, 50)
	sub := &domain.Submission{ID: "sub-1", Filename: "essay.docx", ReceivedAt: time.Now()}

	snap, err := tracker.Capture(context.Background(), sub, 400, "abcdef0123456789")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	if snap.ChangePercentage != nil {
		t.Fatalf("first snapshot must not carry a change percentage")
	}
	if snap.IsMajorChange {
		t.Fatalf("first snapshot must not be flagged as a major change")
	}
}

func TestCaptureComparesAgainstLatest(t *testing.T) {
	store := newSnapshotStoreFake()
	tracker := NewSnapshotTracker(store, 50)
	sub := &domain.Submission{ID: "sub-1", Filename: "essay.docx"}

	if _, err := tracker.Capture(context.Background(), sub, 200, "abcdef0123456789"); err != nil {
		t.Fatalf("Capture() error = %v", err)
	}
	sub2 := &domain.Submission{ID: "sub-2", Filename: "essay.docx"}
	snap, err := tracker.Capture(context.Background(), sub2, 320, "abcdef0123456789")
	if err != nil {
		t.Fatalf("Capture() error = %v", err)
	}

	if snap.ChangePercentage == nil || *snap.ChangePercentage != 60 {
		t.Fatalf("ChangePercentage = %v, want 60", snap.ChangePercentage)
	}
	if !snap.IsMajorChange {
		t.Fatalf("60%% growth must be a major change at a 50%% threshold")
	}
	if snap.ContributionType != domain.ContributionMajorRevision {
		t.Fatalf("ContributionType = %q", snap.ContributionType)
	}
}

func TestGrowthWithoutHistory(t *testing.T) {
	tracker := NewSnapshotTracker(newSnapshotStoreFake(), 50)

	growth, err := tracker.Growth(context.Background(), "essay.docx_abcdef01")
	if err != nil {
		t.Fatalf("Growth() error = %v", err)
	}
	if growth.HasComparison {
		t.Fatalf("expected no comparison without history")
	}
	if growth.Message == "" {
		t.Fatalf("expected explanatory message")
	}
}

func TestGrowthComparesLatestTwo(t *testing.T) {
	store := newSnapshotStoreFake()
	tracker := NewSnapshotTracker(store, 50)
	sub := &domain.Submission{ID: "sub-1", Filename: "essay.docx"}

	for i, words := range []int{100, 150, 180} {
		s := *sub
		s.ID = s.ID + string(rune('a'+i))
		if _, err := tracker.Capture(context.Background(), &s, words, "abcdef0123456789"); err != nil {
			t.Fatalf("Capture() error = %v", err)
		}
	}

	growth, err := tracker.Growth(context.Background(), IdentityKey("essay.docx", "abcdef0123456789"))
	if err != nil {
		t.Fatalf("Growth() error = %v", err)
	}
	if !growth.HasComparison {
		t.Fatalf("expected comparison with two snapshots")
	}
	if growth.CurrentWordCount != 180 || *growth.PreviousWordCount != 150 {
		t.Fatalf("unexpected word counts: %+v", growth)
	}
	if growth.WordCountChange != 30 {
		t.Fatalf("WordCountChange = %d, want 30", growth.WordCountChange)
	}
	if *growth.ChangePercentage != 20 {
		t.Fatalf("ChangePercentage = %v, want 20", *growth.ChangePercentage)
	}
	if growth.ContributionType != domain.ContributionSignificant {
		t.Fatalf("ContributionType = %q", growth.ContributionType)
	}
}
