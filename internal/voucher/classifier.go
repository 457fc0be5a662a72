package voucher

import (
	"strings"

	"github.com/garyjia/expense-journal/internal/settings"
)

var (
	// CardMarkers flag a corporate card row in the payment method or card column (any case)
	CardMarkers = []string{"AMEX", "アメックス"}

	// CommuteMarkers flag a commute row in the ticket type column
	CommuteMarkers = []string{"交通費"}
)

// Partition holds the rows of each category in input order
type Partition struct {
	Card    []Row
	Expense []Row
	Commute []Row
}

// Rows returns the rows classified into c
func (p Partition) Rows(c Category) []Row {
	switch c {
	case CategoryCard:
		return p.Card
	case CategoryExpense:
		return p.Expense
	case CategoryCommute:
		return p.Commute
	}
	return nil
}

// Len returns the total number of classified rows
func (p Partition) Len() int {
	return len(p.Card) + len(p.Expense) + len(p.Commute)
}

// Classify assigns every row to exactly one category. Card signals take
// priority over commute; rows with neither are general expenses. Absent
// signal columns never match.
func Classify(rows []Row, cols Columns) Partition {
	var p Partition
	for _, row := range rows {
		switch ClassifyRow(row, cols) {
		case CategoryCard:
			p.Card = append(p.Card, row)
		case CategoryCommute:
			p.Commute = append(p.Commute, row)
		default:
			p.Expense = append(p.Expense, row)
		}
	}
	return p
}

// ClassifyRow returns the category of a single row
func ClassifyRow(row Row, cols Columns) Category {
	if isCard(row, cols) {
		return CategoryCard
	}
	if v, ok := cols.Value(row, settings.FieldTicketType); ok && containsAny(v, CommuteMarkers) {
		return CategoryCommute
	}
	return CategoryExpense
}

func isCard(row Row, cols Columns) bool {
	for _, field := range []string{settings.FieldPaymentMethod, settings.FieldCardBrand} {
		if v, ok := cols.Value(row, field); ok && containsAnyFold(v, CardMarkers) {
			return true
		}
	}
	return false
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func containsAnyFold(s string, markers []string) bool {
	s = strings.ToLower(s)
	for _, m := range markers {
		if strings.Contains(s, strings.ToLower(m)) {
			return true
		}
	}
	return false
}
