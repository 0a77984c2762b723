package domain

type ReadabilityScores struct {
	FleschKincaidGrade        float64 `json:"flesch_kincaid_grade"`
	FleschReadingEase         float64 `json:"flesch_reading_ease"`
	AutomatedReadabilityIndex float64 `json:"automated_readability_index"`
	ColemanLiauIndex          float64 `json:"coleman_liau_index"`
	ReadingLevel              string  `json:"reading_level"`
}

type TermFrequency struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

type TokenAnalysis struct {
	TotalTokens        int             `json:"total_tokens"`
	UniqueTokens       int             `json:"unique_tokens"`
	FilteredTokens     int             `json:"filtered_tokens"`
	VocabularyRichness float64         `json:"vocabulary_richness"`
	TopTerms           []TermFrequency `json:"top_terms"`
}

type EntityAnalysis struct {
	ByType        map[string][]string `json:"by_type"`
	TotalEntities int                 `json:"total_entities"`
	EntityTypes   []string            `json:"entity_types"`
}

type SentimentAnalysis struct {
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Overall  string  `json:"overall"`
}

// LocalTextAnalysis holds the heuristic text analysis computed without any
// external service. A nil section means its analyzer could not produce a
// result; Notes records why.
type LocalTextAnalysis struct {
	Readability *ReadabilityScores `json:"readability,omitempty"`
	Tokens      *TokenAnalysis     `json:"tokens,omitempty"`
	Entities    *EntityAnalysis    `json:"entities,omitempty"`
	Sentiment   *SentimentAnalysis `json:"sentiment,omitempty"`
	Notes       []string           `json:"notes,omitempty"`
}

type RubricCriterion struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Rubric struct {
	ID       string            `json:"id"`
	Title    string            `json:"title"`
	Criteria []RubricCriterion `json:"criteria"`
}

// CriterionRating is a reviewer judgement on one rubric criterion.
// Rating is one of "low", "medium", "high".
type CriterionRating struct {
	Name     string `json:"name"`
	Rating   string `json:"rating"`
	Feedback string `json:"feedback,omitempty"`
}

// QualitativeReview is the model-produced qualitative assessment. When the
// model returned prose instead of the expected structure, only Summary is
// set and it carries the raw response.
type QualitativeReview struct {
	Summary             string            `json:"summary"`
	KeyTopics           []string          `json:"key_topics,omitempty"`
	WritingQuality      string            `json:"writing_quality,omitempty"`
	ContentDepth        string            `json:"content_depth,omitempty"`
	AcademicLevel       string            `json:"academic_level,omitempty"`
	Strengths           []string          `json:"strengths,omitempty"`
	AreasForImprovement []string          `json:"areas_for_improvement,omitempty"`
	Criteria            []CriterionRating `json:"criteria,omitempty"`
}
