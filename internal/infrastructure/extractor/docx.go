package extractor

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/metadoclabs/insights/internal/core/domain"
)

// extractResult is what one format extractor produces before the chain
// applies its fallbacks.
type extractResult struct {
	fields partialMeta
	text   string
	notes  []string
}

func extractDocx(raw []byte) (*extractResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, domain.WrapError(domain.ErrFatalParse, "open docx container", err)
	}

	result := &extractResult{}
	layers := []struct {
		name string
		fn   func(*zip.Reader, *partialMeta) error
	}{
		{"core properties", readCoreProperties},
		{"extended properties", readAppProperties},
	}
	for _, layer := range layers {
		var fields partialMeta
		if err := layer.fn(zr, &fields); err != nil {
			result.notes = append(result.notes, fmt.Sprintf("parsing_error: docx %s: %v", layer.name, err))
			continue
		}
		result.fields.merge(fields)
	}

	text, err := readDocumentText(zr)
	if err != nil {
		return nil, domain.WrapError(domain.ErrFatalParse, "read docx body", err)
	}
	result.text = text
	return result, nil
}

type corePropsXML struct {
	Creator        string `xml:"creator"`
	LastModifiedBy string `xml:"lastModifiedBy"`
	Created        string `xml:"created"`
	Modified       string `xml:"modified"`
	Revision       string `xml:"revision"`
}

func readCoreProperties(zr *zip.Reader, fields *partialMeta) error {
	reader, err := openZipEntry(zr, "docProps/core.xml")
	if err != nil {
		return err
	}
	defer reader.Close()

	var props corePropsXML
	if err := xml.NewDecoder(reader).Decode(&props); err != nil {
		return fmt.Errorf("decode core.xml: %w", err)
	}

	setString(&fields.author, props.Creator)
	setString(&fields.lastEditor, props.LastModifiedBy)
	setTime(&fields.created, parseW3CDate(props.Created))
	setTime(&fields.modified, parseW3CDate(props.Modified))
	if revision, err := strconv.Atoi(strings.TrimSpace(props.Revision)); err == nil {
		fields.revisionCount = &revision
	}
	return nil
}

type appPropsXML struct {
	Application string `xml:"Application"`
	TotalTime   string `xml:"TotalTime"`
}

func readAppProperties(zr *zip.Reader, fields *partialMeta) error {
	reader, err := openZipEntry(zr, "docProps/app.xml")
	if err != nil {
		return err
	}
	defer reader.Close()

	var props appPropsXML
	if err := xml.NewDecoder(reader).Decode(&props); err != nil {
		return fmt.Errorf("decode app.xml: %w", err)
	}

	setString(&fields.application, props.Application)
	if minutes, err := strconv.Atoi(strings.TrimSpace(props.TotalTime)); err == nil {
		fields.editingMinutes = &minutes
	}
	return nil
}

// readDocumentText streams word/document.xml, collecting run text and
// turning paragraph ends into newlines.
func readDocumentText(zr *zip.Reader) (string, error) {
	reader, err := openZipEntry(zr, "word/document.xml")
	if err != nil {
		return "", err
	}
	defer reader.Close()

	decoder := xml.NewDecoder(reader)
	var builder strings.Builder
	var inRunText bool
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode document.xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inRunText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inRunText = false
			case "p":
				builder.WriteString("\n")
			case "tab":
				builder.WriteString("\t")
			}
		case xml.CharData:
			if inRunText {
				builder.Write(t)
			}
		}
	}
	return strings.TrimSpace(builder.String()), nil
}

func openZipEntry(zr *zip.Reader, name string) (io.ReadCloser, error) {
	for _, file := range zr.File {
		if file.Name == name {
			return file.Open()
		}
	}
	return nil, fmt.Errorf("missing %s", name)
}

// parseW3CDate handles the date flavors office packages actually emit.
func parseW3CDate(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return &parsed
		}
	}
	return nil
}
