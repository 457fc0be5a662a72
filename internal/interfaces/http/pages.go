package http

import (
	"embed"
	"html/template"

	"github.com/garyjia/expense-journal/internal/settings"
	"github.com/garyjia/expense-journal/internal/voucher"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// headerFormField binds a settings form input to a source header field
type headerFormField struct {
	Name  string
	Field string
	Label string
}

// headerFormFields lists the column mapping inputs in form order
var headerFormFields = []headerFormField{
	{Name: "h_date", Field: settings.FieldDate, Label: "日付"},
	{Name: "h_account", Field: settings.FieldAccount, Label: "勘定科目名"},
	{Name: "h_subaccount", Field: settings.FieldSubAccount, Label: "補助科目名"},
	{Name: "h_dept", Field: settings.FieldDepartment, Label: "部門"},
	{Name: "h_tax", Field: settings.FieldTaxRate, Label: "税率"},
	{Name: "h_amount", Field: settings.FieldAmount, Label: "金額(小計)"},
	{Name: "h_memo", Field: settings.FieldMemo, Label: "自由記入欄"},
	{Name: "h_pay", Field: settings.FieldPaymentMethod, Label: "支払方法"},
	{Name: "h_card", Field: settings.FieldCardBrand, Label: "カード"},
	{Name: "h_ticket", Field: settings.FieldTicketType, Label: "伝票種別"},
}

// Credit rule input name suffixes, prefixed by the category key
const (
	creditAccountSuffix    = "_credit_acct"
	creditSubAccountSuffix = "_credit_sub"
	creditDepartmentSuffix = "_credit_dept"
	creditTaxCodeSuffix    = "_credit_tax"
)

type formInput struct {
	Label string
	Name  string
	Value string
}

type creditBlock struct {
	Label  string
	Inputs []formInput
}

type indexPage struct {
	Version    string
	InputSheet string
}

type manualPage struct {
	Version string
}

type settingsPage struct {
	Headers []formInput
	Credits []creditBlock
}

func newSettingsPage(doc *settings.Document) settingsPage {
	var page settingsPage
	for _, f := range headerFormFields {
		value, _ := doc.SourceHeaders.Get(f.Field)
		page.Headers = append(page.Headers, formInput{Label: f.Label, Name: f.Name, Value: value})
	}
	for _, c := range voucher.Categories {
		rule, _ := c.CreditRule(doc)
		key := string(c)
		page.Credits = append(page.Credits, creditBlock{
			Label: c.Label(),
			Inputs: []formInput{
				{Label: settings.ColCreditAccount, Name: key + creditAccountSuffix, Value: rule.Account},
				{Label: settings.ColCreditSubAccount, Name: key + creditSubAccountSuffix, Value: rule.SubAccount},
				{Label: settings.ColCreditDepartment, Name: key + creditDepartmentSuffix, Value: rule.Department},
				{Label: settings.ColCreditTaxCode, Name: key + creditTaxCodeSuffix, Value: rule.TaxCode},
			},
		})
	}
	return page
}
