package sheet

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func shiftJIS(t *testing.T, s string) []byte {
	t.Helper()
	out, _, err := transform.Bytes(japanese.ShiftJIS.NewEncoder(), []byte(s))
	require.NoError(t, err)
	return out
}

func workbook(t *testing.T, sheets map[string][][]string, order []string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for c, v := range row {
				values[c] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name         string
		data         []byte
		wantText     string
		wantEncoding string
	}{
		{
			name:         "utf-8 with BOM",
			data:         append([]byte{0xEF, 0xBB, 0xBF}, []byte("日付,小計")...),
			wantText:     "日付,小計",
			wantEncoding: "utf-8-sig",
		},
		{
			name:         "plain utf-8",
			data:         []byte("日付,小計"),
			wantText:     "日付,小計",
			wantEncoding: "utf-8",
		},
		{
			name:         "cp932",
			data:         shiftJIS(t, "日付,小計"),
			wantText:     "日付,小計",
			wantEncoding: "cp932",
		},
		{
			name:         "undecodable bytes are dropped",
			data:         []byte{'a', 0x81, 0xFF, 'b'},
			wantText:     "ab",
			wantEncoding: "utf-8-lossy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, enc := DecodeText(tt.data)
			assert.Equal(t, tt.wantText, text)
			assert.Equal(t, tt.wantEncoding, enc)
		})
	}
}

func TestSelectSheet(t *testing.T) {
	sel := Selection{Name: "②データ貼付", Contains: "データ貼"}

	tests := []struct {
		name         string
		names        []string
		want         string
		wantSelector string
		wantErr      error
	}{
		{
			name:         "exact name wins",
			names:        []string{"①表紙", "データ貼付(旧)", "②データ貼付"},
			want:         "②データ貼付",
			wantSelector: "exact",
		},
		{
			name:         "falls back to substring",
			names:        []string{"①表紙", "データ貼付(旧)"},
			want:         "データ貼付(旧)",
			wantSelector: "contains",
		},
		{
			name:         "falls back to first sheet",
			names:        []string{"Sheet1", "Sheet2"},
			want:         "Sheet1",
			wantSelector: "first",
		},
		{
			name:    "no sheets",
			names:   nil,
			wantErr: ErrNoSheets,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, selector, err := SelectSheet(tt.names, sel)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantSelector, selector)
		})
	}
}

func TestReadCSV(t *testing.T) {
	t.Run("reads cp932 export", func(t *testing.T) {
		data := shiftJIS(t, " 日付 ,小計,支払方法\n2025-10-02,1000,AMEX\n\n2025-10-03,2500,現金\n")

		table, err := ReadCSV(data)

		require.NoError(t, err)
		assert.Equal(t, []string{"日付", "小計", "支払方法"}, table.Headers)
		require.Equal(t, 2, table.Len())
		assert.Equal(t, []string{"2025-10-03", "2500", "現金"}, table.Rows[1])

		idx, ok := table.ColumnIndex("小計")
		assert.True(t, ok)
		assert.Equal(t, 1, idx)
	})

	t.Run("pads ragged rows", func(t *testing.T) {
		table, err := ReadCSV([]byte("a,b\n1\n1,2,3\n"))

		require.NoError(t, err)
		assert.Equal(t, 3, table.Width())
		assert.Equal(t, []string{"1", "", ""}, table.Rows[0])
		assert.Equal(t, []string{"1", "2", "3"}, table.Rows[1])
	})

	t.Run("header only yields no rows", func(t *testing.T) {
		table, err := ReadCSV([]byte("日付,小計\n"))
		require.NoError(t, err)
		assert.Equal(t, 0, table.Len())
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := ReadCSV([]byte("  \n"))
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}

func TestReadXLSX(t *testing.T) {
	data := workbook(t, map[string][][]string{
		"①表紙":    {{"title"}},
		"②データ貼付": {{"日付", "小計"}, {"2025-10-02", "1000"}},
	}, []string{"①表紙", "②データ貼付"})

	t.Run("reads the configured sheet", func(t *testing.T) {
		table, err := ReadXLSX(data, Selection{Name: "②データ貼付", Contains: "データ貼"})

		require.NoError(t, err)
		assert.Equal(t, []string{"日付", "小計"}, table.Headers)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, []string{"2025-10-02", "1000"}, table.Rows[0])
	})

	t.Run("falls back to first sheet", func(t *testing.T) {
		table, err := ReadXLSX(data, Selection{Name: "missing", Contains: "missing"})

		require.NoError(t, err)
		assert.Equal(t, []string{"title"}, table.Headers)
	})
}

// typedWorkbook holds a date, an account and an amount written as typed
// cells with the number formats an accounting export carries
func typedWorkbook(t *testing.T, date time.Time, dateFormat int, amount float64, amountFormat string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"日付", "勘定科目名", "小計"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", date))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", "旅費"))
	require.NoError(t, f.SetCellValue("Sheet1", "C2", amount))

	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: dateFormat})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", dateStyle))

	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFormat})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "C2", "C2", amountStyle))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadXLSX_TypedCells(t *testing.T) {
	tests := []struct {
		name         string
		date         time.Time
		dateFormat   int
		amount       float64
		amountFormat string
		want         []string
	}{
		{
			name:         "short date and yen amount",
			date:         time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
			dateFormat:   14,
			amount:       1000,
			amountFormat: "¥#,##0",
			want:         []string{"2025-10-02", "旅費", "1000"},
		},
		{
			name:         "datetime format and thousands separator",
			date:         time.Date(2025, 10, 2, 0, 0, 0, 0, time.UTC),
			dateFormat:   22,
			amount:       12345,
			amountFormat: "#,##0",
			want:         []string{"2025-10-02", "旅費", "12345"},
		},
		{
			name:         "time of day is kept",
			date:         time.Date(2025, 10, 3, 14, 30, 0, 0, time.UTC),
			dateFormat:   22,
			amount:       250.5,
			amountFormat: "[$¥-411]#,##0.0",
			want:         []string{"2025-10-03 14:30:00", "旅費", "250.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := typedWorkbook(t, tt.date, tt.dateFormat, tt.amount, tt.amountFormat)

			table, err := ReadXLSX(data, Selection{})

			require.NoError(t, err)
			require.Equal(t, 1, table.Len())
			assert.Equal(t, tt.want, table.Rows[0])
		})
	}
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy/mm/dd", true},
		{"[$-411]ggge\"年\"m\"月\"d\"日\"", true},
		{"h:mm:ss", true},
		{"¥#,##0", false},
		{"[$¥-411]#,##0;[Red]-#,##0", false},
		{"\"day\" 0", false},
		{"General", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}

func TestRead(t *testing.T) {
	t.Run("dispatches on csv extension", func(t *testing.T) {
		table, err := Read([]byte("a,b\n1,2\n"), "EXPORT.CSV", Selection{})
		require.NoError(t, err)
		assert.Equal(t, 1, table.Len())
	})

	t.Run("wraps spreadsheet failures in ParseError", func(t *testing.T) {
		_, err := Read([]byte("not a workbook"), "upload.xlsx", Selection{})

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "upload.xlsx", parseErr.Filename)
		assert.Equal(t, "spreadsheet", parseErr.Format)
	})

	t.Run("wraps empty csv in ParseError", func(t *testing.T) {
		_, err := Read(nil, "upload.csv", Selection{})

		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.ErrorIs(t, err, ErrEmptyInput)
	})
}
