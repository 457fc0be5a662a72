// Package sheet decodes uploaded CSV and spreadsheet files into a Table of
// named columns.
package sheet

import "strings"

// Table is a decoded upload: a header row plus data rows of equal width
type Table struct {
	Headers []string
	Rows    [][]string
	index   map[string]int
}

// NewTable builds a table, trimming header labels and padding every row to
// the widest row so positional lookups stay in bounds of the table width.
// Rows whose cells are all blank are skipped.
func NewTable(headers []string, rows [][]string) *Table {
	width := len(headers)
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	t := &Table{
		Headers: make([]string, width),
		index:   make(map[string]int, width),
	}
	for i := 0; i < width; i++ {
		if i < len(headers) {
			t.Headers[i] = strings.TrimSpace(headers[i])
		}
		if name := t.Headers[i]; name != "" {
			if _, dup := t.index[name]; !dup {
				t.index[name] = i
			}
		}
	}

	for _, row := range rows {
		if isBlank(row) {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		t.Rows = append(t.Rows, padded)
	}
	return t
}

// Len returns the number of data rows
func (t *Table) Len() int {
	return len(t.Rows)
}

// Width returns the number of columns
func (t *Table) Width() int {
	return len(t.Headers)
}

// ColumnIndex returns the position of the first column labelled name
func (t *Table) ColumnIndex(name string) (int, bool) {
	i, ok := t.index[strings.TrimSpace(name)]
	return i, ok
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
