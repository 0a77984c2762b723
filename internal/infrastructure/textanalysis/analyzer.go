package textanalysis

import (
	"context"
	"strings"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// Texts shorter than this carry too little signal for any heuristic.
const minAnalyzableChars = 10

const (
	defaultTopTermLimit = 20
	defaultEntityCap    = 10
)

// Analyzer computes readability, token, entity and sentiment heuristics
// locally, with no external service. Each section degrades independently:
// a section that cannot be computed stays nil and leaves a note.
type Analyzer struct {
	topTermLimit     int
	entityCapPerType int
}

func New(topTermLimit, entityCapPerType int) *Analyzer {
	if topTermLimit <= 0 {
		topTermLimit = defaultTopTermLimit
	}
	if entityCapPerType <= 0 {
		entityCapPerType = defaultEntityCap
	}
	return &Analyzer{topTermLimit: topTermLimit, entityCapPerType: entityCapPerType}
}

func (a *Analyzer) Analyze(ctx context.Context, text string) (*domain.LocalTextAnalysis, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minAnalyzableChars {
		return &domain.LocalTextAnalysis{Notes: []string{"insufficient text for analysis"}}, nil
	}

	analysis := &domain.LocalTextAnalysis{}

	if scores, note := scoreReadability(trimmed); note != "" {
		analysis.Notes = append(analysis.Notes, note)
	} else {
		analysis.Readability = scores
	}

	if tokens, note := analyzeTokens(trimmed, a.topTermLimit); note != "" {
		analysis.Notes = append(analysis.Notes, note)
	} else {
		analysis.Tokens = tokens
	}

	if entities, note := extractEntities(trimmed, a.entityCapPerType); note != "" {
		analysis.Notes = append(analysis.Notes, note)
	} else {
		analysis.Entities = entities
	}

	if sentiment, note := scoreSentiment(trimmed); note != "" {
		analysis.Notes = append(analysis.Notes, note)
	} else {
		analysis.Sentiment = sentiment
	}

	return analysis, nil
}
