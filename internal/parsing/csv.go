package parsing

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"

	"github.com/hyperfill/formfill/internal/types"
)

// ParseCSV decodes delimited text into rows keyed by the header line. It never fails:
// CRLF and lone CR become LF, quoted fields may hold commas, newlines and "" escapes,
// blank lines are skipped, short rows are padded with "" and extra trailing fields dropped.
// Decoding stops at the first record that cannot be read, keeping the rows before it.
func ParseCSV(text string) []types.Row {
	text = strings.TrimPrefix(text, "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	r := csv.NewReader(strings.NewReader(text))
	r.LazyQuotes = true
	// a quote after ", " still opens a quoted field
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var headers []string
	rows := make([]types.Row, 0)

	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			break
		}
		if isBlankLine(record) {
			continue
		}

		if headers == nil {
			headers = make([]string, len(record))
			for i, h := range record {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}

		row := make(types.Row, len(headers))
		for i, h := range headers {
			value := ""
			if i < len(record) {
				value = strings.TrimSpace(record[i])
			}
			row[i] = types.Cell{Header: h, Value: value}
		}
		rows = append(rows, row)
	}

	return rows
}

// isBlankLine matches a physical line holding nothing but whitespace.
func isBlankLine(record []string) bool {
	return len(record) == 1 && strings.TrimSpace(record[0]) == ""
}
