package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// CSVIngestor reads a header-keyed CSV file. It is the workhorse ingestor:
// risk registers, financials, sentiment series, stakeholder maps, and the
// exported activity dumps (Wrike, Gmail, HubSpot, ...) are all CSV.
type CSVIngestor struct {
	path   string
	source string
}

// NewCSV returns a CSV ingestor for the given file, labeled with sourceName
// in prompt output.
func NewCSV(path, sourceName string) *CSVIngestor {
	return &CSVIngestor{path: path, source: sourceName}
}

func (c *CSVIngestor) SourceName() string { return c.source }

// Ingest reads the file into a Table. The first record is the header row;
// a UTF-8 BOM on the first header is stripped. Short rows pad with empty
// strings, long rows drop the overflow.
func (c *CSVIngestor) Ingest() (*Table, error) {
	if c.path == "" {
		return nil, fmt.Errorf("%s: no path specified in config", c.source)
	}

	f, err := os.Open(c.path) // #nosec G304 - path comes from user config
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.source, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: parse csv: %w", c.source, err)
	}
	if len(records) == 0 {
		return &Table{}, nil
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\ufeff")
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(Row, len(headers))
		for i, h := range headers {
			if i < len(record) {
				row[h] = record[i]
			} else {
				row[h] = ""
			}
		}
		rows = append(rows, row)
	}

	return &Table{Headers: headers, Rows: rows}, nil
}

// FormatForPrompt renders the table as "# SOURCE / ## Record N / - key: value"
// text, skipping empty values.
func (c *CSVIngestor) FormatForPrompt() (string, error) {
	table, err := c.Ingest()
	if err != nil {
		return "", err
	}
	return formatTable(c.source, table), nil
}

func formatTable(source string, table *Table) string {
	if len(table.Rows) == 0 {
		return fmt.Sprintf("# %s\n(No data available)", strings.ToUpper(source))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", strings.ToUpper(source))
	fmt.Fprintf(&b, "Total Records: %d\n\n", len(table.Rows))

	for i, row := range table.Rows {
		fmt.Fprintf(&b, "## Record %d\n", i+1)
		for _, h := range table.Headers {
			if v := row[h]; v != "" {
				fmt.Fprintf(&b, "  - %s: %s\n", h, v)
			}
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n")
}
