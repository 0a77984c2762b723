package domain

import "time"

type TimelinessClass string

const (
	TimelinessOnTime     TimelinessClass = "on_time"
	TimelinessLate       TimelinessClass = "late"
	TimelinessLastMinute TimelinessClass = "last_minute_rush"
	TimelinessNoDeadline TimelinessClass = "no_deadline"
)

// Deadline is a course deadline. DueAt is a wall-clock time with no zone
// attached; Timezone names the IANA zone it should be interpreted in.
type Deadline struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	DueAt       time.Time `json:"due_at"`
	Timezone    string    `json:"timezone,omitempty"`
	RubricID    string    `json:"rubric_id,omitempty"`
}

// TimelinessResult classifies one submission against its deadline.
// DeltaMinutes is positive when the submission landed after the deadline.
type TimelinessResult struct {
	Classification TimelinessClass `json:"classification"`
	Message        string          `json:"message"`
	SubmittedAt    *time.Time      `json:"submitted_at,omitempty"`
	DueAt          *time.Time      `json:"due_at,omitempty"`
	DeltaMinutes   *int64          `json:"delta_minutes,omitempty"`
}
