package textanalysis

import (
	"context"
	"strings"
	"testing"
)

func TestAnalyzeInsufficientText(t *testing.T) {
	analyzer := New(0, 0)
	analysis, err := analyzer.Analyze(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.Readability != nil || analysis.Tokens != nil || analysis.Entities != nil || analysis.Sentiment != nil {
		t.Fatalf("expected all sections nil for tiny text, got %+v", analysis)
	}
	if len(analysis.Notes) != 1 {
		t.Fatalf("expected one note, got %v", analysis.Notes)
	}
}

func TestAnalyzePopulatesAllSections(t *testing.T) {
	text := "The proposed methodology demonstrates excellent rigor. " +
		"Maria Santos collected the survey data during March 12, 2026. " +
		"Contact her at maria.santos@example.edu for the dataset. " +
		"The results were clear, consistent, and convincing."

	analyzer := New(0, 0)
	analysis, err := analyzer.Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if analysis.Readability == nil || analysis.Tokens == nil || analysis.Entities == nil || analysis.Sentiment == nil {
		t.Fatalf("expected all sections populated, notes=%v", analysis.Notes)
	}
	if analysis.Readability.ReadingLevel == "" {
		t.Fatalf("expected a reading level")
	}
	if analysis.Sentiment.Overall != "positive" {
		t.Fatalf("Overall = %q, want positive", analysis.Sentiment.Overall)
	}
}

func TestAnalyzeRespectsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(0, 0).Analyze(ctx, "long enough text for analysis"); err == nil {
		t.Fatalf("expected context error")
	}
}

func TestTokensFilterStopWordsAndRankTerms(t *testing.T) {
	text := "the analysis framework framework framework supports the analysis pipeline"
	tokens, note := analyzeTokens(text, 2)
	if note != "" {
		t.Fatalf("unexpected note %q", note)
	}
	if tokens.TotalTokens != 9 {
		t.Fatalf("TotalTokens = %d, want 9", tokens.TotalTokens)
	}
	if len(tokens.TopTerms) != 2 {
		t.Fatalf("TopTerms = %v, want 2 entries", tokens.TopTerms)
	}
	if tokens.TopTerms[0].Term != "framework" || tokens.TopTerms[0].Count != 3 {
		t.Fatalf("top term = %+v", tokens.TopTerms[0])
	}
	if tokens.TopTerms[1].Term != "analysis" || tokens.TopTerms[1].Count != 2 {
		t.Fatalf("second term = %+v", tokens.TopTerms[1])
	}
}

func TestEntitiesDedupedAndCapped(t *testing.T) {
	text := strings.Repeat("Email alice@example.com or bob@example.com. ", 3) +
		"Charlie Brown met Dana White and Charlie Brown again."
	entities, note := extractEntities(text, 1)
	if note != "" {
		t.Fatalf("unexpected note %q", note)
	}
	if len(entities.ByType["email"]) != 1 {
		t.Fatalf("email entities = %v, want capped at 1", entities.ByType["email"])
	}
	if len(entities.ByType["person"]) != 1 {
		t.Fatalf("person entities = %v, want capped at 1", entities.ByType["person"])
	}
}

func TestSentimentNeutralBand(t *testing.T) {
	sentiment, note := scoreSentiment("The chair stands near the window beside the table.")
	if note != "" {
		t.Fatalf("unexpected note %q", note)
	}
	if sentiment.Overall != "neutral" {
		t.Fatalf("Overall = %q, want neutral", sentiment.Overall)
	}

	sentiment, _ = scoreSentiment("The flawed, confusing and disorganized draft was poor and weak.")
	if sentiment.Overall != "negative" {
		t.Fatalf("Overall = %q, want negative", sentiment.Overall)
	}
}

func TestReadingLevelBands(t *testing.T) {
	cases := map[float64]string{
		3:  "Elementary",
		8:  "Middle School",
		11: "High School",
		15: "College",
		18: "Graduate",
	}
	for grade, want := range cases {
		if got := readingLevel(grade); got != want {
			t.Fatalf("readingLevel(%v) = %q, want %q", grade, got, want)
		}
	}
}

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"cat":        1,
		"table":      1,
		"analysis":   4,
		"university": 5,
		"a":          1,
	}
	for word, want := range cases {
		if got := countSyllables(word); got != want {
			t.Fatalf("countSyllables(%q) = %d, want %d", word, got, want)
		}
	}
}
