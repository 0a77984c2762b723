package extractor

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/metadoclabs/insights/internal/core/domain"
)

func extractPDF(raw []byte) (result *extractResult, err error) {
	// The pdf parser panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = domain.WrapError(domain.ErrFatalParse, "parse pdf", fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrFatalParse, "open pdf", err)
	}

	result = &extractResult{}
	readPDFInfo(reader, result)

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			result.notes = append(result.notes, fmt.Sprintf("parsing_error: pdf page %d: %v", pageNum, err))
			continue
		}
		builder.WriteString(content)
		builder.WriteString("\n")
	}
	result.text = strings.TrimSpace(builder.String())
	return result, nil
}

// readPDFInfo pulls what the Info dictionary offers; PDFs rarely carry
// editor or revision data, so most fields stay unset for later layers.
func readPDFInfo(reader *pdf.Reader, result *extractResult) {
	info := reader.Trailer().Key("Info")
	if info.Kind() != pdf.Dict {
		return
	}

	setString(&result.fields.author, info.Key("Author").RawString())
	if app := strings.TrimSpace(info.Key("Creator").RawString()); app != "" {
		setString(&result.fields.application, app)
	} else {
		setString(&result.fields.application, info.Key("Producer").RawString())
	}
	setTime(&result.fields.created, parsePDFDate(info.Key("CreationDate").RawString()))
	setTime(&result.fields.modified, parsePDFDate(info.Key("ModDate").RawString()))
}

// parsePDFDate parses D:YYYYMMDDHHmmSS with an optional zone suffix like
// +02'00' or Z.
func parsePDFDate(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	trimmed = strings.TrimPrefix(trimmed, "D:")
	if trimmed == "" {
		return nil
	}
	trimmed = strings.ReplaceAll(trimmed, "'", "")
	trimmed = strings.TrimSuffix(trimmed, "Z")

	for _, layout := range []string{"20060102150405-0700", "20060102150405", "200601021504", "20060102"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}
