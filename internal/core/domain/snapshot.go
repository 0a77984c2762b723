package domain

import "time"

// Contribution type buckets, keyed off the absolute change percentage.
const (
	ContributionCompleteRewrite = "Complete Rewrite"
	ContributionMajorRevision   = "Major Revision"
	ContributionSignificant     = "Significant Contribution"
	ContributionModerate        = "Moderate Contribution"
	ContributionMinor           = "Minor Contribution"
	ContributionMinimal         = "Minimal Changes"
)

// Snapshot is one append-only version record for a document identity.
// ChangePercentage is nil for the first snapshot of an identity.
type Snapshot struct {
	ID               string    `json:"id"`
	IdentityKey      string    `json:"identity_key"`
	SubmissionID     string    `json:"submission_id"`
	WordCount        int       `json:"word_count"`
	ContentHash      string    `json:"content_hash"`
	CapturedAt       time.Time `json:"captured_at"`
	ChangePercentage *float64  `json:"change_percentage,omitempty"`
	IsMajorChange    bool      `json:"is_major_change"`
	ContributionType string    `json:"contribution_type,omitempty"`
}

// ContributionGrowth compares the two most recent snapshots of an identity.
type ContributionGrowth struct {
	HasComparison     bool     `json:"has_comparison"`
	Message           string   `json:"message,omitempty"`
	CurrentWordCount  int      `json:"current_word_count"`
	PreviousWordCount *int     `json:"previous_word_count,omitempty"`
	WordCountChange   int      `json:"word_count_change"`
	ChangePercentage  *float64 `json:"change_percentage,omitempty"`
	IsMajorChange     bool     `json:"is_major_change"`
	ContributionType  string   `json:"contribution_type,omitempty"`
}
