package extractor

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/metadoclabs/insights/internal/core/domain"
	"github.com/metadoclabs/insights/internal/core/ports"
)

// Chain routes a stored submission to its format extractor, then finishes
// the layered metadata: filesystem timestamps as the lowest-trust layer,
// sentinel scrubbing, placeholder filling, and contributor derivation.
type Chain struct {
	storage ports.ObjectStorage
}

func NewChain(storage ports.ObjectStorage) *Chain {
	return &Chain{storage: storage}
}

func (c *Chain) Extract(ctx context.Context, sub *domain.Submission) (*domain.Extraction, error) {
	raw, err := c.readAll(ctx, sub.StoragePath)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFatalParse, "read stored document", err)
	}

	result, err := c.extractByFormat(sub.Filename, raw)
	if err != nil {
		return nil, err
	}

	// Filesystem modification time is the last-resort layer for documents
	// whose own properties carry no timestamp.
	if result.fields.modified == nil {
		if info, statErr := c.storage.Stat(ctx, sub.StoragePath); statErr == nil {
			modified := info.ModTime().UTC()
			result.fields.modified = &modified
			result.notes = append(result.notes, "modification time taken from file storage")
		}
	}

	return &domain.Extraction{
		Metadata: finalizeMetadata(result.fields),
		Text:     result.text,
		Notes:    result.notes,
	}, nil
}

func (c *Chain) extractByFormat(filename string, raw []byte) (*extractResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return extractDocx(raw)
	case ".pdf":
		return extractPDF(raw)
	case ".xlsx", ".xlsm":
		return extractWorkbook(raw)
	default:
		return extractPlainText(raw)
	}
}

func extractPlainText(raw []byte) (*extractResult, error) {
	if !utf8.Valid(raw) {
		return nil, domain.WrapError(domain.ErrFatalParse, "read plain text",
			errors.New("content is not valid utf-8 text"))
	}
	return &extractResult{text: strings.TrimSpace(string(raw))}, nil
}

func (c *Chain) readAll(ctx context.Context, key string) ([]byte, error) {
	reader, err := c.storage.Open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

var _ ports.DocumentExtractor = (*Chain)(nil)
