// Package settings holds the conversion settings document: source column
// names, tax label normalization and the credit rule applied to each category.
package settings

import (
	"fmt"
	"strings"
)

// Category keys used for credit rules and output file names
const (
	KeyCard    = "amex"
	KeyExpense = "keihi"
	KeyCommute = "kotsuhi"
)

// CategoryKeys lists every category key in output order
var CategoryKeys = []string{KeyCard, KeyExpense, KeyCommute}

// Source header field keys, as used in the settings document and form
const (
	FieldDate          = "date"
	FieldAccount       = "account"
	FieldSubAccount    = "subaccount"
	FieldDepartment    = "dept"
	FieldTaxRate       = "tax"
	FieldAmount        = "amount"
	FieldMemo          = "memo"
	FieldPaymentMethod = "pay_method"
	FieldCardBrand     = "card_brand"
	FieldTicketType    = "ticket_type"
)

// HeaderFields lists the logical source fields in form order
var HeaderFields = []string{
	FieldDate, FieldAccount, FieldSubAccount, FieldDepartment, FieldTaxRate,
	FieldAmount, FieldMemo, FieldPaymentMethod, FieldCardBrand, FieldTicketType,
}

// Document is the full settings document persisted by Store
type Document struct {
	InputSheet    SheetSettings         `yaml:"input_sheet"`
	OutputColumns []string              `yaml:"output_columns"`
	SourceHeaders SourceHeaders         `yaml:"source_headers"`
	TaxMap        TaxMap                `yaml:"tax_map"`
	CreditRules   map[string]CreditRule `yaml:"credit_rules"`
}

// SheetSettings selects the worksheet of spreadsheet uploads
type SheetSettings struct {
	Name     string `yaml:"name"`
	Contains string `yaml:"contains"`
}

// SourceHeaders maps logical fields to the physical column labels of the export
type SourceHeaders struct {
	Date          string `yaml:"date"`
	Account       string `yaml:"account"`
	SubAccount    string `yaml:"subaccount"`
	Department    string `yaml:"dept"`
	TaxRate       string `yaml:"tax"`
	Amount        string `yaml:"amount"`
	Memo          string `yaml:"memo"`
	PaymentMethod string `yaml:"pay_method"`
	CardBrand     string `yaml:"card_brand"`
	TicketType    string `yaml:"ticket_type"`
}

// TaxMap normalizes source tax labels to accounting tax codes
type TaxMap struct {
	Labels  map[string]string `yaml:"labels"`
	Default string            `yaml:"default"`
}

// CreditRule is the credit side applied to every line of a category voucher
type CreditRule struct {
	Account    string `yaml:"account"`
	SubAccount string `yaml:"subaccount"`
	Department string `yaml:"dept"`
	TaxCode    string `yaml:"tax"`
}

// Get returns the column label configured for a field key
func (h SourceHeaders) Get(field string) (string, bool) {
	p := h.ptr(field)
	if p == nil {
		return "", false
	}
	return *p, true
}

// Set replaces the column label of a field key. Unknown keys are ignored.
func (h *SourceHeaders) Set(field, label string) bool {
	p := h.ptr(field)
	if p == nil {
		return false
	}
	*p = label
	return true
}

func (h *SourceHeaders) ptr(field string) *string {
	switch field {
	case FieldDate:
		return &h.Date
	case FieldAccount:
		return &h.Account
	case FieldSubAccount:
		return &h.SubAccount
	case FieldDepartment:
		return &h.Department
	case FieldTaxRate:
		return &h.TaxRate
	case FieldAmount:
		return &h.Amount
	case FieldMemo:
		return &h.Memo
	case FieldPaymentMethod:
		return &h.PaymentMethod
	case FieldCardBrand:
		return &h.CardBrand
	case FieldTicketType:
		return &h.TicketType
	}
	return nil
}

// Normalize maps a source tax label to its tax code.
// Blank and unmapped labels get the default code.
func (m TaxMap) Normalize(label string) string {
	label = strings.TrimSpace(label)
	if label != "" {
		if code, ok := m.Labels[label]; ok {
			return code
		}
	}
	return m.Default
}

// Validate checks the invariants every conversion depends on
func (d *Document) Validate() error {
	if d == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidSettings)
	}
	for _, key := range CategoryKeys {
		rule, ok := d.CreditRules[key]
		if !ok {
			return fmt.Errorf("%w: missing credit rule for %s", ErrInvalidSettings, key)
		}
		if strings.TrimSpace(rule.Account) == "" {
			return fmt.Errorf("%w: credit account for %s is empty", ErrInvalidSettings, key)
		}
	}
	for key := range d.CreditRules {
		if !isCategoryKey(key) {
			return fmt.Errorf("%w: unknown credit rule %q", ErrInvalidSettings, key)
		}
	}
	if strings.TrimSpace(d.SourceHeaders.Amount) == "" {
		return fmt.Errorf("%w: amount column is empty", ErrInvalidSettings)
	}
	if strings.TrimSpace(d.TaxMap.Default) == "" {
		return fmt.Errorf("%w: default tax code is empty", ErrInvalidSettings)
	}
	if len(d.OutputColumns) == 0 {
		return fmt.Errorf("%w: output columns are empty", ErrInvalidSettings)
	}
	return nil
}

// Clone returns a deep copy so callers can read-modify-write safely
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := *d
	out.OutputColumns = append([]string(nil), d.OutputColumns...)
	if d.TaxMap.Labels != nil {
		out.TaxMap.Labels = make(map[string]string, len(d.TaxMap.Labels))
		for k, v := range d.TaxMap.Labels {
			out.TaxMap.Labels[k] = v
		}
	}
	if d.CreditRules != nil {
		out.CreditRules = make(map[string]CreditRule, len(d.CreditRules))
		for k, v := range d.CreditRules {
			out.CreditRules[k] = v
		}
	}
	return &out
}

func isCategoryKey(key string) bool {
	for _, k := range CategoryKeys {
		if k == key {
			return true
		}
	}
	return false
}
