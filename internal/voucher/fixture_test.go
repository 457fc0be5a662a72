package voucher

import (
	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/sheet"
)

// exportWidth covers column AM of the expense export layout
const exportWidth = 39

// exportHeaders places the default source headers at their export positions
var exportHeaders = map[string]string{
	"A":  "伝票No",
	"C":  "日付",
	"D":  "勘定科目名",
	"E":  "補助科目名",
	"F":  "負担部門(選択必須)",
	"G":  "自由記入欄",
	"H":  "税率",
	"I":  "小計",
	"J":  "支払方法",
	"K":  "区間",
	"L":  "カード",
	"M":  "交通機関",
	"N":  "伝票種別",
	"P":  "申請者",
	"AM": "支払先",
}

// exportTable builds a table from rows keyed by column letter
func exportTable(rows ...map[string]string) *sheet.Table {
	return exportTableWith(exportHeaders, rows...)
}

func exportTableWith(headers map[string]string, rows ...map[string]string) *sheet.Table {
	hdr := make([]string, exportWidth)
	for letter, label := range headers {
		hdr[ColumnIndex(letter)] = label
	}
	data := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, exportWidth)
		for letter, v := range r {
			cells[ColumnIndex(letter)] = v
		}
		data = append(data, cells)
	}
	return sheet.NewTable(hdr, data)
}

func expenseRow(id, date, amount string) map[string]string {
	return map[string]string{
		"A": id, "C": date, "D": "旅費交通費", "F": "営業部", "G": "打合せ",
		"H": "課対仕入込10%", "I": amount, "J": "現金", "N": "経費精算", "P": "山田", "AM": "喫茶店",
	}
}

func cardRow(id, date, amount string) map[string]string {
	r := expenseRow(id, date, amount)
	r["J"] = "法人カード"
	r["L"] = "amex"
	return r
}

func commuteRow(id, date, amount string) map[string]string {
	r := expenseRow(id, date, amount)
	r["N"] = "交通費精算"
	r["K"] = "渋谷-新宿"
	r["M"] = "JR"
	return r
}

func rowsAndColumns(table *sheet.Table) ([]Row, Columns) {
	return Rows(table), ResolveColumns(table, settings.Default().SourceHeaders)
}
