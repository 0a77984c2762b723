package textanalysis

import (
	"math"
	"regexp"
	"strings"
	"unicode"

	"github.com/metadoclabs/insights/internal/core/domain"
)

var reSentenceSplit = regexp.MustCompile(`[.!?]+`)

func scoreReadability(text string) (*domain.ReadabilityScores, string) {
	sentences := countSentences(text)
	words := strings.Fields(text)
	if sentences == 0 || len(words) == 0 {
		return nil, "readability: no complete sentences to score"
	}

	var syllables, letters int
	for _, word := range words {
		syllables += countSyllables(word)
		letters += countLetters(word)
	}
	if syllables == 0 || letters == 0 {
		return nil, "readability: no scorable words"
	}

	wordCount := float64(len(words))
	wordsPerSentence := wordCount / float64(sentences)
	syllablesPerWord := float64(syllables) / wordCount
	lettersPerWord := float64(letters) / wordCount

	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59
	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	ari := 4.71*lettersPerWord + 0.5*wordsPerSentence - 21.43
	coleman := 0.0588*(lettersPerWord*100) - 0.296*(float64(sentences)/wordCount*100) - 15.8

	return &domain.ReadabilityScores{
		FleschKincaidGrade:        round2(grade),
		FleschReadingEase:         round2(ease),
		AutomatedReadabilityIndex: round2(ari),
		ColemanLiauIndex:          round2(coleman),
		ReadingLevel:              readingLevel(grade),
	}, ""
}

func readingLevel(grade float64) string {
	switch {
	case grade <= 6:
		return "Elementary"
	case grade <= 9:
		return "Middle School"
	case grade <= 12:
		return "High School"
	case grade <= 16:
		return "College"
	default:
		return "Graduate"
	}
}

func countSentences(text string) int {
	count := 0
	for _, part := range reSentenceSplit.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// countSyllables approximates syllables as vowel groups, discounting a
// trailing silent e. Every word counts at least one.
func countSyllables(word string) int {
	cleaned := strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if cleaned == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range cleaned {
		vowel := strings.ContainsRune("aeiouy", r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}
	if strings.HasSuffix(cleaned, "e") && count > 1 {
		count--
	}
	if count < 1 {
		count = 1
	}
	return count
}

func countLetters(word string) int {
	count := 0
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
