package textanalysis

import (
	"regexp"
	"sort"

	"github.com/metadoclabs/insights/internal/core/domain"
)

var (
	reEmail = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	reURL   = regexp.MustCompile(`https?://[^\s<>"']+`)
	reMoney = regexp.MustCompile(`[$€£]\s?\d+(?:[.,]\d+)*`)
	reDate  = regexp.MustCompile(`\b(?:\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|(?:January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{1,2},?\s+\d{4})\b`)
	// Adjacent capitalized words are the best cheap signal for names.
	rePersonName = regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`)
)

func extractEntities(text string, capPerType int) (*domain.EntityAnalysis, string) {
	byType := make(map[string][]string)
	collect(byType, "email", reEmail.FindAllString(text, -1), capPerType)
	collect(byType, "url", reURL.FindAllString(text, -1), capPerType)
	collect(byType, "money", reMoney.FindAllString(text, -1), capPerType)
	collect(byType, "date", reDate.FindAllString(text, -1), capPerType)
	collect(byType, "person", rePersonName.FindAllString(text, -1), capPerType)

	total := 0
	types := make([]string, 0, len(byType))
	for entityType, values := range byType {
		total += len(values)
		types = append(types, entityType)
	}
	sort.Strings(types)

	return &domain.EntityAnalysis{
		ByType:        byType,
		TotalEntities: total,
		EntityTypes:   types,
	}, ""
}

// collect dedupes in first-seen order and caps the list per type; a type
// with no matches is left out entirely.
func collect(byType map[string][]string, entityType string, matches []string, limit int) {
	if len(matches) == 0 {
		return
	}
	seen := make(map[string]struct{}, len(matches))
	values := make([]string, 0, len(matches))
	for _, match := range matches {
		if _, ok := seen[match]; ok {
			continue
		}
		seen[match] = struct{}{}
		values = append(values, match)
		if len(values) >= limit {
			break
		}
	}
	byType[entityType] = values
}
