package ingest

import (
	"fmt"
	"strings"

	"github.com/tealeg/xlsx"
)

// XLSXIngestor reads the first sheet of a spreadsheet into a Table.
// Finance teams hand over exposure workbooks as .xlsx more often than CSV,
// so this gets the same treatment as the CSV ingestor.
type XLSXIngestor struct {
	path   string
	source string
}

// NewXLSX returns a spreadsheet ingestor for the given file.
func NewXLSX(path, sourceName string) *XLSXIngestor {
	return &XLSXIngestor{path: path, source: sourceName}
}

func (x *XLSXIngestor) SourceName() string { return x.source }

// Ingest reads the first sheet. The first row is the header row; trailing
// cells beyond the header width are dropped.
func (x *XLSXIngestor) Ingest() (*Table, error) {
	if x.path == "" {
		return nil, fmt.Errorf("%s: no path specified in config", x.source)
	}

	file, err := xlsx.OpenFile(x.path)
	if err != nil {
		return nil, fmt.Errorf("%s: open workbook: %w", x.source, err)
	}
	if len(file.Sheets) == 0 {
		return &Table{}, nil
	}

	sheet := file.Sheets[0]
	if len(sheet.Rows) == 0 {
		return &Table{}, nil
	}

	headers := make([]string, 0, len(sheet.Rows[0].Cells))
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, strings.TrimSpace(cell.Value))
	}

	rows := make([]Row, 0, len(sheet.Rows)-1)
	for _, sheetRow := range sheet.Rows[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(sheetRow.Cells) {
				row[h] = sheetRow.Cells[i].Value
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// FormatForPrompt renders the sheet in the same record format as CSV sources.
func (x *XLSXIngestor) FormatForPrompt() (string, error) {
	table, err := x.Ingest()
	if err != nil {
		return "", err
	}
	return formatTable(x.source, table), nil
}
