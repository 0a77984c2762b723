package domain

import "time"

type ReportStatus string

const (
	StatusPending    ReportStatus = "pending"
	StatusProcessing ReportStatus = "processing"
	StatusCompleted  ReportStatus = "completed"
	StatusWarning    ReportStatus = "warning"
	StatusFailed     ReportStatus = "failed"
)

// IsTerminal reports whether a run that reached this status has finished,
// successfully or not.
func (s ReportStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusWarning, StatusFailed:
		return true
	default:
		return false
	}
}

// Submission is the intake-owned record an analysis run starts from.
// Intake stores the file and registers this row; the pipeline only reads it.
type Submission struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	StoragePath string    `json:"storage_path"`
	ContentHash string    `json:"content_hash,omitempty"`
	ReceivedAt  time.Time `json:"received_at"`
	DeadlineID  string    `json:"deadline_id,omitempty"`
	RubricID    string    `json:"rubric_id,omitempty"`
}

// ValueUnavailable is the placeholder for metadata fields no extraction
// layer could fill.
const ValueUnavailable = "Unavailable"

// Extraction is the combined outcome of text and metadata extraction for
// one stored document. Notes records layers that failed without aborting
// the extraction.
type Extraction struct {
	Metadata DocumentMetadata `json:"metadata"`
	Text     string           `json:"text"`
	Notes    []string         `json:"notes,omitempty"`
}

type Contributor struct {
	Name string     `json:"name"`
	Role string     `json:"role"`
	Date *time.Time `json:"date,omitempty"`
}

// DocumentMetadata is the merged result of the layered metadata extraction.
// Unknown string fields hold "Unavailable" rather than empty strings.
type DocumentMetadata struct {
	Author         string        `json:"author"`
	LastEditor     string        `json:"last_editor"`
	Application    string        `json:"application"`
	CreatedAt      *time.Time    `json:"created_at,omitempty"`
	ModifiedAt     *time.Time    `json:"modified_at,omitempty"`
	RevisionCount  int           `json:"revision_count"`
	EditingMinutes int           `json:"editing_minutes"`
	Contributors   []Contributor `json:"contributors,omitempty"`
}

type ContentStatistics struct {
	WordCount              int     `json:"word_count"`
	CharacterCount         int     `json:"character_count"`
	CharacterCountNoSpaces int     `json:"character_count_no_spaces"`
	SentenceCount          int     `json:"sentence_count"`
	ParagraphCount         int     `json:"paragraph_count"`
	EstimatedPages         int     `json:"estimated_pages"`
	AvgWordsPerSentence    float64 `json:"avg_words_per_sentence"`
	AvgSentenceLength      float64 `json:"avg_sentence_length"`
}

type Recommendation struct {
	Category string `json:"category"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

// ConsolidatedSummary flattens the quantitative and qualitative sections
// into the headline numbers plus actionable recommendations.
type ConsolidatedSummary struct {
	GradeLevel         *float64         `json:"grade_level,omitempty"`
	ReadingLevel       string           `json:"reading_level,omitempty"`
	VocabularyRichness *float64         `json:"vocabulary_richness,omitempty"`
	UniqueWords        *int             `json:"unique_words,omitempty"`
	TotalEntities      *int             `json:"total_entities,omitempty"`
	Recommendations    []Recommendation `json:"recommendations"`
}

// AnalysisReport is the aggregate produced by one pipeline run. Sections
// are pointers: nil means the stage did not run or did not produce output.
type AnalysisReport struct {
	ID                 string               `json:"id"`
	SubmissionID       string               `json:"submission_id"`
	Status             ReportStatus         `json:"status"`
	ErrorMessage       string               `json:"error_message,omitempty"`
	Metadata           *DocumentMetadata    `json:"metadata,omitempty"`
	Statistics         *ContentStatistics   `json:"statistics,omitempty"`
	Timeliness         *TimelinessResult    `json:"timeliness,omitempty"`
	TextAnalysis       *LocalTextAnalysis   `json:"text_analysis,omitempty"`
	Review             *QualitativeReview   `json:"review,omitempty"`
	Consolidated       *ConsolidatedSummary `json:"consolidated,omitempty"`
	IsComplete         bool                 `json:"is_complete"`
	ValidationWarnings []string             `json:"validation_warnings,omitempty"`
	Notes              []string             `json:"notes,omitempty"`
	// DocumentText keeps the extracted text for reruns and audits; it is
	// persisted but excluded from rendered reports.
	DocumentText          string    `json:"-"`
	ContributionGrowthPct *float64  `json:"contribution_growth_pct,omitempty"`
	AnalysisVersion       string    `json:"analysis_version,omitempty"`
	ProcessingSeconds     float64   `json:"processing_seconds"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}
