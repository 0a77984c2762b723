package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// TimelinessClassifier classifies submissions against deadlines. Deadlines
// carry a naive wall-clock due time plus an IANA zone name; the classifier
// resolves both sides to UTC before comparing.
type TimelinessClassifier struct {
	lastMinuteWindow time.Duration
}

func NewTimelinessClassifier(lastMinuteWindow time.Duration) *TimelinessClassifier {
	if lastMinuteWindow <= 0 {
		lastMinuteWindow = time.Hour
	}
	return &TimelinessClassifier{lastMinuteWindow: lastMinuteWindow}
}

// EffectiveSubmissionTime prefers the document's own modification timestamp
// over the platform receipt time, so a re-upload of an old file is judged
// by when it was actually written.
func EffectiveSubmissionTime(meta *domain.DocumentMetadata, receivedAt time.Time) time.Time {
	if meta != nil && meta.ModifiedAt != nil {
		return meta.ModifiedAt.UTC()
	}
	return receivedAt.UTC()
}

func (c *TimelinessClassifier) Classify(submittedAt time.Time, deadline *domain.Deadline) domain.TimelinessResult {
	if deadline == nil {
		return domain.TimelinessResult{
			Classification: domain.TimelinessNoDeadline,
			Message:        "No deadline associated with this submission",
		}
	}

	due := resolveDueUTC(deadline)
	submitted := submittedAt.UTC()
	delta := submitted.Sub(due)
	deltaMinutes := int64(delta / time.Minute)

	result := domain.TimelinessResult{
		SubmittedAt:  &submitted,
		DueAt:        &due,
		DeltaMinutes: &deltaMinutes,
	}
	switch {
	case delta > 0:
		result.Classification = domain.TimelinessLate
		result.Message = fmt.Sprintf("Submitted %s after the deadline", humanizeDelta(delta))
	case -delta <= c.lastMinuteWindow:
		result.Classification = domain.TimelinessLastMinute
		result.Message = fmt.Sprintf("Submitted %s before the deadline", humanizeDelta(-delta))
	default:
		result.Classification = domain.TimelinessOnTime
		result.Message = fmt.Sprintf("Submitted %s before the deadline", humanizeDelta(-delta))
	}
	return result
}

// resolveDueUTC reinterprets the stored wall-clock due time in the
// deadline's zone. Unknown or empty zones fall back to UTC rather than
// failing the run.
func resolveDueUTC(d *domain.Deadline) time.Time {
	loc := time.UTC
	if tz := strings.TrimSpace(d.Timezone); tz != "" {
		if parsed, err := time.LoadLocation(tz); err == nil {
			loc = parsed
		}
	}
	t := d.DueAt
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc).UTC()
}

func humanizeDelta(d time.Duration) string {
	if d < 0 {
		d = -d
	}
	totalMinutes := int64(d / time.Minute)
	days := totalMinutes / (24 * 60)
	hours := (totalMinutes % (24 * 60)) / 60
	minutes := totalMinutes % 60

	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}
