package services

import "strings"

// Row is one record from an imported tabular file. Export files come from
// different systems with unpredictable header vocabularies ("Qty" vs
// "Sales QTY" vs "Inv. Qty"), so cells are only reachable through Field.
// Header order is preserved so substring matches resolve deterministically.
type Row struct {
	headers []string
	cells   map[string]string
}

// NewRow builds a row from a header line and the matching value line.
// Blank headers are dropped; values beyond the header count are ignored.
func NewRow(headers []string, values []string) Row {
	r := Row{cells: make(map[string]string, len(headers))}
	for i, header := range headers {
		if strings.TrimSpace(header) == "" {
			continue
		}
		r.headers = append(r.headers, header)
		if i < len(values) {
			r.cells[header] = values[i]
		}
	}
	return r
}

// Field scans the headers case-insensitively for the first one containing any
// of the given substrings, tried in priority order, and returns the first
// non-empty trimmed value. ok is false when no header matches or every
// matching cell is blank.
func (r Row) Field(keys ...string) (string, bool) {
	for _, key := range keys {
		want := strings.ToLower(strings.TrimSpace(key))
		if want == "" {
			continue
		}
		for _, header := range r.headers {
			if !strings.Contains(strings.ToLower(header), want) {
				continue
			}
			value := strings.TrimSpace(r.cells[header])
			if value != "" {
				return value, true
			}
		}
	}
	return "", false
}

// IsEmpty reports whether every cell in the row is blank.
func (r Row) IsEmpty() bool {
	for _, header := range r.headers {
		if strings.TrimSpace(r.cells[header]) != "" {
			return false
		}
	}
	return true
}
