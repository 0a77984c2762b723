package usecase

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/metadoclabs/insights/internal/core/domain"
)

const wordsPerPage = 250

var sentenceBoundary = regexp.MustCompile(`[.!?]+`)

// ComputeContentStatistics derives the surface statistics of extracted text.
// Empty or whitespace-only text yields the zero value for every field.
func ComputeContentStatistics(text string) domain.ContentStatistics {
	if strings.TrimSpace(text) == "" {
		return domain.ContentStatistics{}
	}

	wordCount := len(strings.Fields(text))
	sentenceCount := countNonBlank(sentenceBoundary.Split(text, -1))
	paragraphCount := countNonBlank(strings.Split(text, "\n"))

	stats := domain.ContentStatistics{
		WordCount:              wordCount,
		CharacterCount:         utf8.RuneCountInString(text),
		CharacterCountNoSpaces: utf8.RuneCountInString(strings.ReplaceAll(text, " ", "")),
		SentenceCount:          sentenceCount,
		ParagraphCount:         paragraphCount,
		EstimatedPages:         estimatePages(wordCount),
	}
	if sentenceCount > 0 {
		stats.AvgWordsPerSentence = round2(float64(wordCount) / float64(sentenceCount))
		stats.AvgSentenceLength = round2(float64(stats.CharacterCount) / float64(sentenceCount))
	}
	return stats
}

func estimatePages(wordCount int) int {
	pages := int(math.Round(float64(wordCount) / wordsPerPage))
	if pages < 1 {
		return 1
	}
	return pages
}

func countNonBlank(parts []string) int {
	count := 0
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
