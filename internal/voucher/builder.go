package voucher

import (
	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/shopspring/decimal"
)

// Line is one row of a compound journal entry
type Line struct {
	VoucherID string
	Date      string

	DebitAccount    string
	DebitSubAccount string
	DebitDepartment string
	DebitTaxCode    string
	DebitAmount     decimal.Decimal
	DebitMemo       string

	CreditAccount    string
	CreditSubAccount string
	CreditDepartment string
	CreditTaxCode    string
	CreditAmount     decimal.Decimal
	CreditMemo       string

	Remarks string
}

// Voucher is the compound journal entry built from one category's rows
type Voucher struct {
	ID       string
	Category Category
	Lines    []Line

	// Dropped counts input rows removed for an invalid amount
	Dropped int
	// Rejected lists the dropped rows in input order
	Rejected []RejectedRow
}

// RejectedRow is a data row dropped because its amount did not parse
type RejectedRow struct {
	Row    int
	Amount string
}

// Empty reports whether no line survived
func (v *Voucher) Empty() bool {
	return v == nil || len(v.Lines) == 0
}

// DebitTotal sums the debit amounts of every line
func (v *Voucher) DebitTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.DebitAmount)
	}
	return total
}

// CreditTotal sums the credit amounts of every line
func (v *Voucher) CreditTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range v.Lines {
		total = total.Add(l.CreditAmount)
	}
	return total
}

// BuildVoucher turns one category's rows into a compound entry under id.
// Every row becomes a debit line; rows whose amount does not parse are
// dropped. The credit side repeats the category rule on every line and
// carries the whole debit total on the first line, zero elsewhere.
func BuildVoucher(rows []Row, cols Columns, c Category, id string, doc *settings.Document) *Voucher {
	v := &Voucher{ID: id, Category: c}
	rule, _ := c.CreditRule(doc)

	total := decimal.Zero
	for _, row := range rows {
		raw := field(cols, row, settings.FieldAmount)
		amount := ParseAmount(raw)
		if !amount.Valid {
			v.Dropped++
			v.Rejected = append(v.Rejected, RejectedRow{Row: row.Number, Amount: raw})
			continue
		}
		total = total.Add(amount.Value)

		memo := BuildMemo(row, c)
		v.Lines = append(v.Lines, Line{
			VoucherID:       id,
			Date:            FormatDate(field(cols, row, settings.FieldDate)),
			DebitAccount:    field(cols, row, settings.FieldAccount),
			DebitSubAccount: field(cols, row, settings.FieldSubAccount),
			DebitDepartment: field(cols, row, settings.FieldDepartment),
			DebitTaxCode:    doc.TaxMap.Normalize(field(cols, row, settings.FieldTaxRate)),
			DebitAmount:     amount.Value,
			DebitMemo:       memo,

			CreditAccount:    rule.Account,
			CreditSubAccount: rule.SubAccount,
			CreditDepartment: rule.Department,
			CreditTaxCode:    rule.TaxCode,
			CreditAmount:     decimal.Zero,
			CreditMemo:       memo,
		})
	}

	if len(v.Lines) > 0 {
		v.Lines[0].CreditAmount = total
	}
	return v
}

// field returns the cell of a logical field, "" when the column is absent
func field(cols Columns, row Row, name string) string {
	v, _ := cols.Value(row, name)
	return v
}

// Value returns the cell of the named output column. Unknown columns are blank.
func (l Line) Value(column string) string {
	switch column {
	case settings.ColVoucherID:
		return l.VoucherID
	case settings.ColDate:
		return l.Date
	case settings.ColDebitAccount:
		return l.DebitAccount
	case settings.ColDebitSubAccount:
		return l.DebitSubAccount
	case settings.ColDebitDepartment:
		return l.DebitDepartment
	case settings.ColDebitTaxCode:
		return l.DebitTaxCode
	case settings.ColDebitAmount:
		return l.DebitAmount.String()
	case settings.ColDebitMemo:
		return l.DebitMemo
	case settings.ColCreditAccount:
		return l.CreditAccount
	case settings.ColCreditSubAccount:
		return l.CreditSubAccount
	case settings.ColCreditDepartment:
		return l.CreditDepartment
	case settings.ColCreditTaxCode:
		return l.CreditTaxCode
	case settings.ColCreditAmount:
		return l.CreditAmount.String()
	case settings.ColCreditMemo:
		return l.CreditMemo
	case settings.ColRemarks:
		return l.Remarks
	}
	return ""
}

// Records renders every line in the given column order
func (v *Voucher) Records(columns []string) [][]string {
	out := make([][]string, 0, len(v.Lines))
	for _, l := range v.Lines {
		rec := make([]string, len(columns))
		for i, col := range columns {
			rec[i] = l.Value(col)
		}
		out = append(out, rec)
	}
	return out
}
