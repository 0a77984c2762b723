package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// AnalysisPolicy is an optional YAML overlay for the thresholds that
// instructors tune per course. Only fields present in the file override
// the environment configuration.
type AnalysisPolicy struct {
	MinDocumentWords     *int `yaml:"min_document_words"`
	MaxDocumentWords     *int `yaml:"max_document_words"`
	MinDocumentSentences *int `yaml:"min_document_sentences"`

	LastMinuteWindowMinutes *int     `yaml:"last_minute_window_minutes"`
	MajorChangeThresholdPct *float64 `yaml:"major_change_threshold_pct"`

	TopTermsLimit      *int `yaml:"top_terms_limit"`
	EntityLimitPerType *int `yaml:"entity_limit_per_type"`
}

func ApplyPolicyFile(cfg *Config, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read policy file: %w", err)
	}

	var policy AnalysisPolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return fmt.Errorf("parse policy file: %w", err)
	}

	if policy.MinDocumentWords != nil {
		cfg.MinDocumentWords = *policy.MinDocumentWords
	}
	if policy.MaxDocumentWords != nil {
		cfg.MaxDocumentWords = *policy.MaxDocumentWords
	}
	if policy.MinDocumentSentences != nil {
		cfg.MinDocumentSentences = *policy.MinDocumentSentences
	}
	if policy.LastMinuteWindowMinutes != nil {
		cfg.LastMinuteWindowMinutes = *policy.LastMinuteWindowMinutes
	}
	if policy.MajorChangeThresholdPct != nil {
		cfg.MajorChangeThresholdPct = *policy.MajorChangeThresholdPct
	}
	if policy.TopTermsLimit != nil {
		cfg.TopTermsLimit = *policy.TopTermsLimit
	}
	if policy.EntityLimitPerType != nil {
		cfg.EntityLimitPerType = *policy.EntityLimitPerType
	}
	return nil
}
