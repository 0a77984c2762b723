package usecase

import "github.com/metadoclabs/insights/internal/core/domain"

// Recommendation priority levels, highest first.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// Consolidate flattens the local analysis and the optional qualitative
// review into headline figures plus a deduplicated recommendation list.
// Either input may be nil.
func Consolidate(analysis *domain.LocalTextAnalysis, review *domain.QualitativeReview) *domain.ConsolidatedSummary {
	summary := &domain.ConsolidatedSummary{Recommendations: []domain.Recommendation{}}

	if analysis != nil {
		consolidateReadability(summary, analysis.Readability)
		consolidateTokens(summary, analysis.Tokens)
		if analysis.Entities != nil {
			total := analysis.Entities.TotalEntities
			summary.TotalEntities = &total
		}
	}

	if review != nil {
		for _, area := range review.AreasForImprovement {
			summary.Recommendations = append(summary.Recommendations, domain.Recommendation{
				Category: "qualitative",
				Message:  area,
				Priority: PriorityHigh,
			})
		}
		for _, criterion := range review.Criteria {
			if criterion.Rating != "low" {
				continue
			}
			summary.Recommendations = append(summary.Recommendations, domain.Recommendation{
				Category: "rubric",
				Message:  "Criterion rated low: " + criterion.Name,
				Priority: PriorityHigh,
			})
		}
	}

	return summary
}

func consolidateReadability(summary *domain.ConsolidatedSummary, r *domain.ReadabilityScores) {
	if r == nil {
		return
	}
	grade := r.FleschKincaidGrade
	summary.GradeLevel = &grade
	summary.ReadingLevel = r.ReadingLevel

	switch {
	case grade > 16:
		summary.Recommendations = append(summary.Recommendations, domain.Recommendation{
			Category: "readability",
			Message:  "Consider simplifying sentence structure for clearer reading",
			Priority: PriorityMedium,
		})
	case grade < 8:
		summary.Recommendations = append(summary.Recommendations, domain.Recommendation{
			Category: "readability",
			Message:  "Consider more sophisticated vocabulary and sentence construction",
			Priority: PriorityLow,
		})
	}
}

func consolidateTokens(summary *domain.ConsolidatedSummary, tokens *domain.TokenAnalysis) {
	if tokens == nil {
		return
	}
	richness := tokens.VocabularyRichness
	unique := tokens.UniqueTokens
	summary.VocabularyRichness = &richness
	summary.UniqueWords = &unique

	if richness < 0.3 {
		summary.Recommendations = append(summary.Recommendations, domain.Recommendation{
			Category: "vocabulary",
			Message:  "Vary word choice to broaden vocabulary use",
			Priority: PriorityMedium,
		})
	}
}
