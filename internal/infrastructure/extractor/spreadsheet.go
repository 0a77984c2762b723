package extractor

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/metadoclabs/insights/internal/core/domain"
)

func extractWorkbook(raw []byte) (*extractResult, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.WrapError(domain.ErrFatalParse, "open workbook", err)
	}
	defer workbook.Close()

	result := &extractResult{}
	if props, err := workbook.GetDocProps(); err != nil {
		result.notes = append(result.notes, fmt.Sprintf("parsing_error: workbook core properties: %v", err))
	} else {
		setString(&result.fields.author, props.Creator)
		setString(&result.fields.lastEditor, props.LastModifiedBy)
		setTime(&result.fields.created, parseW3CDate(props.Created))
		setTime(&result.fields.modified, parseW3CDate(props.Modified))
		if revision, err := strconv.Atoi(strings.TrimSpace(props.Revision)); err == nil {
			result.fields.revisionCount = &revision
		}
	}
	if app, err := workbook.GetAppProps(); err != nil {
		result.notes = append(result.notes, fmt.Sprintf("parsing_error: workbook app properties: %v", err))
	} else {
		setString(&result.fields.application, app.Application)
	}

	result.text = workbookText(workbook, result)
	return result, nil
}

// workbookText flattens cell values: cells joined by spaces, rows and
// sheets by newlines.
func workbookText(workbook *excelize.File, result *extractResult) string {
	var builder strings.Builder
	for _, sheet := range workbook.GetSheetList() {
		rows, err := workbook.GetRows(sheet)
		if err != nil {
			result.notes = append(result.notes, fmt.Sprintf("parsing_error: sheet %s: %v", sheet, err))
			continue
		}
		for _, row := range rows {
			line := strings.TrimSpace(strings.Join(row, " "))
			if line == "" {
				continue
			}
			builder.WriteString(line)
			builder.WriteString("\n")
		}
	}
	return strings.TrimSpace(builder.String())
}
