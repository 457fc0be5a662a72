package voucher

import "github.com/garyjia/expense-journal/internal/settings"

// Category is the expense bucket a row is classified into
type Category string

const (
	CategoryCard    Category = settings.KeyCard
	CategoryExpense Category = settings.KeyExpense
	CategoryCommute Category = settings.KeyCommute
)

// Categories lists every category in processing and output order
var Categories = []Category{CategoryCard, CategoryExpense, CategoryCommute}

// memoLayouts holds the positional columns joined into each line memo
var memoLayouts = map[Category][]string{
	CategoryCard:    {"G", "C", "P"},
	CategoryExpense: {"G", "C", "AM", "P"},
	CategoryCommute: {"G", "C", "M", "K", "P"},
}

// Prefix returns the voucher id prefix
func (c Category) Prefix() string {
	switch c {
	case CategoryCard:
		return "AMEX"
	case CategoryExpense:
		return "KEIHI"
	case CategoryCommute:
		return "KOTSU"
	}
	return "MISC"
}

// Label returns the display name used on screens
func (c Category) Label() string {
	switch c {
	case CategoryCard:
		return "AMEX"
	case CategoryExpense:
		return "経費"
	case CategoryCommute:
		return "交通費"
	}
	return string(c)
}

// MemoLayout returns the positional column letters of the line memo
func (c Category) MemoLayout() []string {
	return memoLayouts[c]
}

// CreditRule returns the category's credit rule from doc
func (c Category) CreditRule(doc *settings.Document) (settings.CreditRule, bool) {
	rule, ok := doc.CreditRules[string(c)]
	return rule, ok
}
