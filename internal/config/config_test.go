package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.NATSSubject != "analysis.requested" {
		t.Fatalf("NATSSubject = %q", cfg.NATSSubject)
	}
	if cfg.LastMinuteWindowMinutes != 60 {
		t.Fatalf("LastMinuteWindowMinutes = %d", cfg.LastMinuteWindowMinutes)
	}
	if cfg.MajorChangeThresholdPct != 50 {
		t.Fatalf("MajorChangeThresholdPct = %v", cfg.MajorChangeThresholdPct)
	}
	if cfg.ReviewerEnabled {
		t.Fatalf("reviewer should be disabled by default")
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("MIN_DOCUMENT_WORDS", "250")
	t.Setenv("MAJOR_CHANGE_THRESHOLD_PCT", "35.5")
	t.Setenv("REVIEWER_ENABLED", "true")

	cfg := Load()
	if cfg.MinDocumentWords != 250 {
		t.Fatalf("MinDocumentWords = %d", cfg.MinDocumentWords)
	}
	if cfg.MajorChangeThresholdPct != 35.5 {
		t.Fatalf("MajorChangeThresholdPct = %v", cfg.MajorChangeThresholdPct)
	}
	if !cfg.ReviewerEnabled {
		t.Fatalf("expected reviewer enabled")
	}
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("TOP_TERMS_LIMIT", "plenty")
	t.Setenv("REVIEWER_ENABLED", "kinda")

	cfg := Load()
	if cfg.TopTermsLimit != 20 {
		t.Fatalf("TopTermsLimit = %d", cfg.TopTermsLimit)
	}
	if cfg.ReviewerEnabled {
		t.Fatalf("invalid bool should keep fallback")
	}
}

func TestApplyPolicyFileOverridesOnlyPresentFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	body := []byte("min_document_words: 400\nmajor_change_threshold_pct: 30\n")
	if err := os.WriteFile(path, body, 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	cfg := Load()
	if err := ApplyPolicyFile(&cfg, path); err != nil {
		t.Fatalf("ApplyPolicyFile() error = %v", err)
	}
	if cfg.MinDocumentWords != 400 {
		t.Fatalf("MinDocumentWords = %d", cfg.MinDocumentWords)
	}
	if cfg.MajorChangeThresholdPct != 30 {
		t.Fatalf("MajorChangeThresholdPct = %v", cfg.MajorChangeThresholdPct)
	}
	if cfg.LastMinuteWindowMinutes != 60 {
		t.Fatalf("LastMinuteWindowMinutes = %d, expected untouched default", cfg.LastMinuteWindowMinutes)
	}
}

func TestApplyPolicyFileRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	if err := os.WriteFile(path, []byte("min_document_words: [broken"), 0o644); err != nil {
		t.Fatalf("write policy: %v", err)
	}

	cfg := Load()
	if err := ApplyPolicyFile(&cfg, path); err == nil {
		t.Fatalf("expected parse error")
	}
}
