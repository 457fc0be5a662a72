package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Selection names the worksheet to read from a workbook
type Selection struct {
	Name     string
	Contains string
}

// SheetSelector picks a sheet from the workbook's sheet names.
// It returns false when it has no candidate.
type SheetSelector struct {
	Name   string
	Select func(names []string, sel Selection) (string, bool)
}

// SheetSelectors are tried in order: exact name, name substring, first sheet
var SheetSelectors = []SheetSelector{
	{Name: "exact", Select: selectExact},
	{Name: "contains", Select: selectContains},
	{Name: "first", Select: selectFirst},
}

// SelectSheet returns the sheet to read and the selector that chose it
func SelectSheet(names []string, sel Selection) (string, string, error) {
	for _, s := range SheetSelectors {
		if name, ok := s.Select(names, sel); ok {
			return name, s.Name, nil
		}
	}
	return "", "", ErrNoSheets
}

func selectExact(names []string, sel Selection) (string, bool) {
	if sel.Name == "" {
		return "", false
	}
	for _, n := range names {
		if n == sel.Name {
			return n, true
		}
	}
	return "", false
}

func selectContains(names []string, sel Selection) (string, bool) {
	if sel.Contains == "" {
		return "", false
	}
	for _, n := range names {
		if strings.Contains(n, sel.Contains) {
			return n, true
		}
	}
	return "", false
}

func selectFirst(names []string, _ Selection) (string, bool) {
	if len(names) == 0 {
		return "", false
	}
	return names[0], true
}

// Read decodes an upload. Files ending in .csv are read as delimited text,
// everything else as a workbook.
func Read(data []byte, filename string, sel Selection) (*Table, error) {
	if strings.EqualFold(filepath.Ext(filename), ".csv") {
		t, err := ReadCSV(data)
		if err != nil {
			return nil, &ParseError{Filename: filename, Format: "csv", Err: err}
		}
		return t, nil
	}

	t, err := ReadXLSX(data, sel)
	if err != nil {
		return nil, &ParseError{Filename: filename, Format: "spreadsheet", Err: err}
	}
	return t, nil
}

// ReadCSV decodes delimited text whose first record is the header row
func ReadCSV(data []byte) (*Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyInput
	}

	text, _ := DecodeText(data)

	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX decodes the selected worksheet of an xlsx workbook
func ReadXLSX(data []byte, sel Selection) (*Table, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	name, _, err := SelectSheet(f.GetSheetList(), sel)
	if err != nil {
		return nil, err
	}

	rows, err := newCellValues(f, name).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*Table, error) {
	for i, rec := range records {
		if isBlank(rec) {
			continue
		}
		return NewTable(rec, records[i+1:]), nil
	}
	return nil, ErrNoHeader
}
