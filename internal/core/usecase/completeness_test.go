package usecase

import (
	"testing"

	"github.com/metadoclabs/insights/internal/core/domain"
)

func TestCompletenessDisabledPolicyAcceptsEverything(t *testing.T) {
	policy := CompletenessPolicy{}
	complete, warnings := policy.Validate(domain.ContentStatistics{WordCount: 0, SentenceCount: 0})
	if !complete {
		t.Fatalf("expected complete with disabled policy")
	}
	if len(warnings) != 0 {
		t.Fatalf("expected no warnings, got %v", warnings)
	}
}

func TestCompletenessMinWordsShortfall(t *testing.T) {
	policy := CompletenessPolicy{MinWords: 50}
	complete, warnings := policy.Validate(domain.ContentStatistics{WordCount: 12, SentenceCount: 3})
	if complete {
		t.Fatalf("expected incomplete below minimum word count")
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestCompletenessMaxWordsWarnsButStaysComplete(t *testing.T) {
	policy := CompletenessPolicy{MaxWords: 100}
	complete, warnings := policy.Validate(domain.ContentStatistics{WordCount: 150})
	if !complete {
		t.Fatalf("exceeding maximum must not mark the submission incomplete")
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}

func TestCompletenessMinSentences(t *testing.T) {
	policy := CompletenessPolicy{MinSentences: 5}
	complete, warnings := policy.Validate(domain.ContentStatistics{WordCount: 500, SentenceCount: 2})
	if complete {
		t.Fatalf("expected incomplete below minimum sentence count")
	}
	if len(warnings) != 1 {
		t.Fatalf("expected one warning, got %v", warnings)
	}
}
