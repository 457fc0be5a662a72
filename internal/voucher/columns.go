package voucher

import (
	"strings"

	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/sheet"
)

// Row is one data row of the upload with its cells in source column order
type Row struct {
	Number int
	Cells  []string
}

// Rows converts every data row of table
func Rows(table *sheet.Table) []Row {
	rows := make([]Row, 0, table.Len())
	for i, cells := range table.Rows {
		rows = append(rows, Row{Number: i, Cells: cells})
	}
	return rows
}

// ColumnIndex converts a spreadsheet column letter to a zero-based index
// (A=0, Z=25, AA=26). Non-letters are ignored; no letters yields -1.
func ColumnIndex(letter string) int {
	val := 0
	for _, ch := range strings.ToUpper(strings.TrimSpace(letter)) {
		if ch >= 'A' && ch <= 'Z' {
			val = val*26 + int(ch-'A'+1)
		}
	}
	return val - 1
}

// At returns the cell at a column letter, or "" when out of range.
// Positional access ignores header labels.
func (r Row) At(letter string) string {
	idx := ColumnIndex(letter)
	if idx < 0 || idx >= len(r.Cells) {
		return ""
	}
	return r.Cells[idx]
}

// Columns resolves logical source fields to positions in one table
type Columns struct {
	positions map[string]int
}

// ResolveColumns looks up every configured source header in table.
// Fields whose label does not appear are left unresolved.
func ResolveColumns(table *sheet.Table, headers settings.SourceHeaders) Columns {
	cols := Columns{positions: make(map[string]int, len(settings.HeaderFields))}
	for _, field := range settings.HeaderFields {
		label, _ := headers.Get(field)
		if strings.TrimSpace(label) == "" {
			continue
		}
		if idx, ok := table.ColumnIndex(label); ok {
			cols.positions[field] = idx
		}
	}
	return cols
}

// Has reports whether field resolved to a column
func (c Columns) Has(field string) bool {
	_, ok := c.positions[field]
	return ok
}

// Value returns the cell of field in row. The bool is false when the
// column is absent from the table.
func (c Columns) Value(row Row, field string) (string, bool) {
	idx, ok := c.positions[field]
	if !ok || idx >= len(row.Cells) {
		return "", false
	}
	return row.Cells[idx], true
}
