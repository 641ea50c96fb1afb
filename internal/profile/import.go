package profile

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/hyperfill/formfill/internal/parsing"
	"github.com/hyperfill/formfill/internal/types"
	"github.com/xuri/excelize/v2"
)

// DecodeFile turns spreadsheet or CSV bytes into raw rows, choosing the decoder by file extension.
func DecodeFile(name string, data []byte) ([]types.Row, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xls":
		return DecodeSpreadsheet(data)
	case ".csv":
		return parsing.ParseCSV(string(data)), nil
	default:
		return nil, &ImportError{
			Kind:    KindUnsupportedType,
			Message: "upload a .xlsx or .csv file, got " + filepath.Base(name),
		}
	}
}

// DecodeSpreadsheet reads the first sheet of a workbook. The first non-empty sheet row
// holds the headers; short rows are padded with "" and fully empty rows are kept so the
// caller sees the sheet as it is.
func DecodeSpreadsheet(data []byte) ([]types.Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, &ImportError{Kind: KindDecodeFailed, Message: "failed to open workbook", Cause: err}
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}

	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, &ImportError{Kind: KindDecodeFailed, Message: "failed to read sheet " + sheets[0], Cause: err}
	}

	var headers []string
	rows := make([]types.Row, 0, len(grid))
	for _, record := range grid {
		if headers == nil {
			if len(record) == 0 {
				continue
			}
			headers = make([]string, len(record))
			for i, h := range record {
				headers[i] = strings.TrimSpace(h)
			}
			continue
		}

		row := make(types.Row, 0, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			value := ""
			if i < len(record) {
				value = record[i]
			}
			row = append(row, types.Cell{Header: h, Value: value})
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// FromRows picks the first non-blank row and maps it. An empty input or an input of
// only blank rows is reported as an ImportError for the caller to show.
func FromRows(rows []types.Row) (*types.Profile, error) {
	if len(rows) == 0 {
		return nil, &ImportError{Kind: KindEmptyFile, Message: "no rows found"}
	}

	row, ok := FirstNonBlank(rows)
	if !ok {
		return nil, &ImportError{Kind: KindAllBlankRows, Message: "all rows empty"}
	}

	return FromRow(row), nil
}

// ImportFile decodes a spreadsheet or CSV file and maps its first meaningful row.
func ImportFile(name string, data []byte) (*types.Profile, error) {
	rows, err := DecodeFile(name, data)
	if err != nil {
		return nil, err
	}
	return FromRows(rows)
}

// ImportCSV maps the first meaningful row of raw CSV text.
func ImportCSV(text string) (*types.Profile, error) {
	return FromRows(parsing.ParseCSV(text))
}
