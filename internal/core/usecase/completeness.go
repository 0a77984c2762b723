package usecase

import (
	"fmt"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// CompletenessPolicy holds the submission completeness thresholds. A zero
// threshold disables its check, so the zero value accepts everything.
type CompletenessPolicy struct {
	MinWords     int
	MaxWords     int
	MinSentences int
}

// Validate checks the statistics against the policy. Only a shortfall below
// MinWords or MinSentences marks the submission incomplete; exceeding
// MaxWords warns without affecting completeness.
func (p CompletenessPolicy) Validate(stats domain.ContentStatistics) (bool, []string) {
	var warnings []string
	complete := true

	if p.MinWords > 0 && stats.WordCount < p.MinWords {
		warnings = append(warnings, fmt.Sprintf(
			"document contains %d words, below the required minimum of %d", stats.WordCount, p.MinWords))
		complete = false
	}
	if p.MaxWords > 0 && stats.WordCount > p.MaxWords {
		warnings = append(warnings, fmt.Sprintf(
			"document contains %d words, above the allowed maximum of %d", stats.WordCount, p.MaxWords))
	}
	if p.MinSentences > 0 && stats.SentenceCount < p.MinSentences {
		warnings = append(warnings, fmt.Sprintf(
			"document contains %d sentences, below the required minimum of %d", stats.SentenceCount, p.MinSentences))
		complete = false
	}

	return complete, warnings
}
