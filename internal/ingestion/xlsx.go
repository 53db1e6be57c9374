package ingestion

import (
	"bytes"
	"strings"

	"github.com/xuri/excelize/v2"
)

// xlsxToMarkdown renders every non-empty sheet as a "## <sheet>" heading followed by
// one line per row, with cells joined by " | ".
func xlsxToMarkdown(data []byte) (string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", &ExtractionError{Format: FormatXLSX, Message: "cannot open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", &ExtractionError{Format: FormatXLSX, Message: "cannot read sheet " + sheet, Cause: err}
		}

		var lines []string
		for _, row := range rows {
			cells := make([]string, 0, len(row))
			for _, cell := range row {
				if cell = strings.TrimSpace(cell); cell != "" {
					cells = append(cells, cell)
				}
			}
			if len(cells) > 0 {
				lines = append(lines, strings.Join(cells, " | "))
			}
		}
		if len(lines) == 0 {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString("## ")
		sb.WriteString(sheet)
		sb.WriteString("\n\n")
		sb.WriteString(strings.Join(lines, "\n"))
	}
	return sb.String(), nil
}
