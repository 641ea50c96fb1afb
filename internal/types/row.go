package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Cell is one header/value pair of an imported row.
type Cell struct {
	Header string
	Value  string
}

// Row is a raw import record keyed by untrusted header text.
// Column order is kept because duplicate columns resolve as "last header wins".
type Row []Cell

// RowFromMap builds a Row from an unordered map, ordering headers lexically so results are deterministic.
func RowFromMap(m map[string]string) Row {
	headers := make([]string, 0, len(m))
	for h := range m {
		headers = append(headers, h)
	}
	sort.Strings(headers)

	row := make(Row, 0, len(headers))
	for _, h := range headers {
		row = append(row, Cell{Header: h, Value: m[h]})
	}
	return row
}

// Get returns the value of the last cell whose header equals header exactly.
func (r Row) Get(header string) (string, bool) {
	value, found := "", false
	for _, c := range r {
		if c.Header == header {
			value, found = c.Value, true
		}
	}
	return value, found
}

// IsBlank reports whether every value in the row is empty after trimming.
func (r Row) IsBlank() bool {
	for _, c := range r {
		if strings.TrimSpace(c.Value) != "" {
			return false
		}
	}
	return true
}

// MarshalJSON writes the row as a JSON object in column order.
func (r Row) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Header)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(c.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object keeping key order. Non-string scalar values
// are stored in their JSON text form; null becomes "".
func (r *Row) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("row must be a JSON object")
	}

	row := Row{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("row key must be a string")
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("row value for %q: %w", key, err)
		}
		row = append(row, Cell{Header: key, Value: cellText(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*r = row
	return nil
}

func cellText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := bytes.TrimSpace(raw)
	if bytes.Equal(trimmed, []byte("null")) {
		return ""
	}
	return string(trimmed)
}
