package textanalysis

import (
	"math"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// compoundAlpha dampens the normalized score the way compound sentiment
// scores conventionally do.
const compoundAlpha = 15

// Scores inside (-0.05, 0.05) are treated as neutral.
const neutralBand = 0.05

func scoreSentiment(text string) (*domain.SentimentAnalysis, string) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, "sentiment: nothing to score"
	}

	var positive, negative int
	for _, token := range tokens {
		if positiveWords[token] {
			positive++
		}
		if negativeWords[token] {
			negative++
		}
	}

	raw := float64(positive - negative)
	compound := raw / math.Sqrt(raw*raw+compoundAlpha)

	total := float64(len(tokens))
	posRatio := float64(positive) / total
	negRatio := float64(negative) / total

	overall := "neutral"
	switch {
	case compound >= neutralBand:
		overall = "positive"
	case compound <= -neutralBand:
		overall = "negative"
	}

	return &domain.SentimentAnalysis{
		Compound: round4(compound),
		Positive: round4(posRatio),
		Negative: round4(negRatio),
		Neutral:  round4(1 - posRatio - negRatio),
		Overall:  overall,
	}, ""
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
