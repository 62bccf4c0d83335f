package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

const csvDelimiter = ';'

type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (c *CSVExporter) ContentType() string {
	return "text/csv; charset=utf-8"
}

func (c *CSVExporter) Extension() string {
	return FormatCSV
}

// Export writes a header from the first row's keys followed by one line per row.
// Fields are separated by ';' and lines end with CRLF, with no terminator after the last line.
func (c *CSVExporter) Export(rows []Row) ([]byte, error) {
	if len(rows) == 0 {
		return nil, &InputError{Message: "No data provided for CSV export"}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = csvDelimiter
	w.UseCRLF = true

	header := rows[0].Keys()
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := make([]string, len(header))
		for i, key := range header {
			record[i], _ = row.Get(key)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\r\n")), nil
}
