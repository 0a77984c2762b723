package extractor

import (
	"strings"
	"time"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// partialMeta is what one extraction layer contributes. Nil means the layer
// had nothing to say about the field.
type partialMeta struct {
	author         *string
	lastEditor     *string
	application    *string
	created        *time.Time
	modified       *time.Time
	revisionCount  *int
	editingMinutes *int
}

// merge folds src underneath m: fields m already holds win, so layers are
// applied in decreasing order of trust.
func (m *partialMeta) merge(src partialMeta) {
	if m.author == nil {
		m.author = src.author
	}
	if m.lastEditor == nil {
		m.lastEditor = src.lastEditor
	}
	if m.application == nil {
		m.application = src.application
	}
	if m.created == nil {
		m.created = src.created
	}
	if m.modified == nil {
		m.modified = src.modified
	}
	if m.revisionCount == nil {
		m.revisionCount = src.revisionCount
	}
	if m.editingMinutes == nil {
		m.editingMinutes = src.editingMinutes
	}
}

func setString(dst **string, value string) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return
	}
	*dst = &trimmed
}

func setTime(dst **time.Time, value *time.Time) {
	if value == nil {
		return
	}
	utc := value.UTC()
	*dst = &utc
}

// Known generator-tool names that leak into author fields. A match means
// the field tells us about the software, not the person.
var toolSentinels = []string{
	"python-docx",
	"python-pptx",
	"openpyxl",
	"apache poi",
	"docx4j",
	"phpword",
	"aspose",
}

func isToolSentinel(name string) bool {
	lower := strings.ToLower(name)
	for _, sentinel := range toolSentinels {
		if strings.Contains(lower, sentinel) {
			return true
		}
	}
	return false
}

// finalizeMetadata turns merged partial fields into the domain shape:
// sentinel names are scrubbed, missing strings become "Unavailable", and
// the last editor defaults to the author (never the reverse).
func finalizeMetadata(m partialMeta) domain.DocumentMetadata {
	meta := domain.DocumentMetadata{
		Author:      domain.ValueUnavailable,
		LastEditor:  domain.ValueUnavailable,
		Application: domain.ValueUnavailable,
	}

	if m.author != nil && !isToolSentinel(*m.author) {
		meta.Author = *m.author
	}
	if m.lastEditor != nil && !isToolSentinel(*m.lastEditor) {
		meta.LastEditor = *m.lastEditor
	}
	if meta.LastEditor == domain.ValueUnavailable && meta.Author != domain.ValueUnavailable {
		meta.LastEditor = meta.Author
	}
	if m.application != nil {
		meta.Application = *m.application
	}
	meta.CreatedAt = m.created
	meta.ModifiedAt = m.modified
	if m.revisionCount != nil {
		meta.RevisionCount = *m.revisionCount
	}
	if m.editingMinutes != nil {
		meta.EditingMinutes = *m.editingMinutes
	}
	meta.Contributors = buildContributors(meta)
	return meta
}

func buildContributors(meta domain.DocumentMetadata) []domain.Contributor {
	var contributors []domain.Contributor
	if meta.Author != domain.ValueUnavailable {
		contributors = append(contributors, domain.Contributor{
			Name: meta.Author,
			Role: "Owner and Writer",
			Date: meta.CreatedAt,
		})
	}
	if meta.LastEditor != domain.ValueUnavailable && meta.LastEditor != meta.Author {
		contributors = append(contributors, domain.Contributor{
			Name: meta.LastEditor,
			Role: "Last Editor",
			Date: meta.ModifiedAt,
		})
	}
	return contributors
}
