package ollama

import (
	"fmt"
	"strings"

	"github.com/metadoclabs/insights/internal/core/domain"
)

func buildFreeReviewPrompt(snippet string) string {
	return `You are an academic writing reviewer.
Return strict JSON object with keys:
summary (string), key_topics (array of strings), writing_quality (string),
content_depth (string), academic_level (string), strengths (array of strings),
areas_for_improvement (array of strings).
No markdown, no extra keys.

Document:
` + snippet
}

func buildRubricReviewPrompt(snippet string, rubric *domain.Rubric) string {
	var criteriaBuilder strings.Builder
	for idx, criterion := range rubric.Criteria {
		criteriaBuilder.WriteString(fmt.Sprintf("[%d] %s", idx+1, criterion.Name))
		if criterion.Description != "" {
			criteriaBuilder.WriteString(": " + criterion.Description)
		}
		criteriaBuilder.WriteString("\n")
	}

	return fmt.Sprintf(`You are an academic writing reviewer grading against a rubric.
Return strict JSON object with keys:
summary (string), strengths (array of strings), areas_for_improvement (array of strings),
criteria (array of objects with keys name, rating, feedback).
rating must be one of: low, medium, high.
Rate every rubric criterion listed below. No markdown, no extra keys.

Rubric: %s
%s
Document:
%s`, rubric.Title, criteriaBuilder.String(), snippet)
}

func truncateForPrompt(text string, maxChars int) string {
	if len(text) <= maxChars {
		return text
	}
	return text[:maxChars]
}
