package settings

// Output column labels of the freee journal import format
const (
	ColVoucherID        = "伝票番号"
	ColDate             = "日付"
	ColDebitAccount     = "借方勘定科目"
	ColDebitSubAccount  = "借方補助科目"
	ColDebitDepartment  = "借方部門"
	ColDebitTaxCode     = "借方税区分"
	ColDebitAmount      = "借方金額"
	ColDebitMemo        = "借方摘要"
	ColCreditAccount    = "貸方勘定科目"
	ColCreditSubAccount = "貸方補助科目"
	ColCreditDepartment = "貸方部門"
	ColCreditTaxCode    = "貸方税区分"
	ColCreditAmount     = "貸方金額"
	ColCreditMemo       = "貸方摘要"
	ColRemarks          = "備考"
)

// TaxOutOfScope is the tax code for unmapped or blank tax labels
const TaxOutOfScope = "対象外"

// Default returns the built-in document used when nothing is persisted
func Default() *Document {
	return &Document{
		InputSheet: SheetSettings{
			Name:     "②データ貼付",
			Contains: "データ貼",
		},
		OutputColumns: []string{
			ColVoucherID,
			ColDate,
			ColDebitAccount, ColDebitSubAccount, ColDebitDepartment, ColDebitTaxCode, ColDebitAmount, ColDebitMemo,
			ColCreditAccount, ColCreditSubAccount, ColCreditDepartment, ColCreditTaxCode, ColCreditAmount, ColCreditMemo,
			ColRemarks,
		},
		SourceHeaders: SourceHeaders{
			Date:          "日付",
			Account:       "勘定科目名",
			SubAccount:    "補助科目名",
			Department:    "負担部門(選択必須)",
			TaxRate:       "税率",
			Amount:        "小計",
			Memo:          "自由記入欄",
			PaymentMethod: "支払方法",
			CardBrand:     "カード",
			TicketType:    "伝票種別",
		},
		TaxMap: TaxMap{
			Labels: map[string]string{
				"課対仕入込10%":   "課対仕入10%",
				"課対仕入込軽減8%": "課対仕入8%_軽減",
				"対象外":        "対象外",
			},
			Default: TaxOutOfScope,
		},
		CreditRules: map[string]CreditRule{
			KeyCard:    {Account: "未払金", SubAccount: "AMEX", Department: "本社", TaxCode: TaxOutOfScope},
			KeyExpense: {Account: "未払金", SubAccount: "従業員立替", Department: "本社", TaxCode: TaxOutOfScope},
			KeyCommute: {Account: "未払金", SubAccount: "従業員立替", Department: "本社", TaxCode: TaxOutOfScope},
		},
	}
}
