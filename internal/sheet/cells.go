package sheet

import (
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Date cells of a workbook are rewritten to these layouts
const (
	cellDateLayout     = "2006-01-02"
	cellDateTimeLayout = "2006-01-02 15:04:05"
)

// builtInDateFormats are the built-in number format ids that render a date or
// time, including the East Asian ids excelize maps for ja-JP workbooks
var builtInDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

// cellValues reads raw cell values so number formats never leak into the
// table. Numeric cells styled as dates become ISO dates.
type cellValues struct {
	f         *excelize.File
	sheet     string
	date1904  bool
	dateStyle map[int]bool
}

func newCellValues(f *excelize.File, sheet string) *cellValues {
	cv := &cellValues{f: f, sheet: sheet, dateStyle: make(map[int]bool)}
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		cv.date1904 = *props.Date1904
	}
	return cv
}

// Rows returns every row of the sheet with date cells converted
func (cv *cellValues) Rows() ([][]string, error) {
	rows, err := cv.f.GetRows(cv.sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		for c, raw := range row {
			row[c] = cv.value(r, c, raw)
		}
	}
	return rows, nil
}

func (cv *cellValues) value(r, c int, raw string) string {
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || serial < 0 {
		return raw
	}
	cell, err := excelize.CoordinatesToCellName(c+1, r+1)
	if err != nil {
		return raw
	}
	styleID, err := cv.f.GetCellStyle(cv.sheet, cell)
	if err != nil || !cv.isDateStyle(styleID) {
		return raw
	}
	t, err := excelize.ExcelDateToTime(serial, cv.date1904)
	if err != nil {
		return raw
	}
	t = t.Round(time.Second)
	if serial == float64(int64(serial)) {
		return t.Format(cellDateLayout)
	}
	return t.Format(cellDateTimeLayout)
}

func (cv *cellValues) isDateStyle(id int) bool {
	if id == 0 {
		return false
	}
	if known, ok := cv.dateStyle[id]; ok {
		return known
	}
	isDate := false
	if style, err := cv.f.GetStyle(id); err == nil && style != nil {
		isDate = builtInDateFormats[style.NumFmt] ||
			(style.CustomNumFmt != nil && isDateFormatCode(*style.CustomNumFmt))
	}
	cv.dateStyle[id] = isDate
	return isDate
}

// isDateFormatCode reports whether a custom number format renders a date or
// time. Quoted literals, escaped characters and bracketed sections such as
// [$-411] or [Red] are ignored.
func isDateFormatCode(code string) bool {
	inQuote, inBracket, escaped := false, false, false
	for _, ch := range strings.ToLower(code) {
		switch {
		case escaped:
			escaped = false
		case inQuote:
			inQuote = ch != '"'
		case inBracket:
			inBracket = ch != ']'
		case ch == '\\':
			escaped = true
		case ch == '"':
			inQuote = true
		case ch == '[':
			inBracket = true
		case strings.ContainsRune("ymdhs", ch):
			return true
		}
	}
	return false
}
