package textanalysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/metadoclabs/insights/internal/core/domain"
)

var reToken = regexp.MustCompile(`[a-z0-9']+`)

func tokenize(text string) []string {
	return reToken.FindAllString(strings.ToLower(text), -1)
}

func analyzeTokens(text string, topLimit int) (*domain.TokenAnalysis, string) {
	tokens := tokenize(text)
	if len(tokens) == 0 {
		return nil, "tokens: nothing to analyze"
	}

	unique := make(map[string]struct{}, len(tokens))
	freq := make(map[string]int)
	filtered := 0
	for _, token := range tokens {
		unique[token] = struct{}{}
		if stopWords[token] {
			continue
		}
		filtered++
		freq[token]++
	}

	return &domain.TokenAnalysis{
		TotalTokens:        len(tokens),
		UniqueTokens:       len(unique),
		FilteredTokens:     filtered,
		VocabularyRichness: round2(float64(len(unique)) / float64(len(tokens))),
		TopTerms:           topTerms(freq, topLimit),
	}, ""
}

// topTerms ranks by count descending, then term ascending for stable output.
func topTerms(freq map[string]int, limit int) []domain.TermFrequency {
	terms := make([]domain.TermFrequency, 0, len(freq))
	for term, count := range freq {
		terms = append(terms, domain.TermFrequency{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return terms[i].Term < terms[j].Term
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}
