package voucher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Parsed is the outcome of converting a cell. Value is only meaningful when Valid.
type Parsed[T any] struct {
	Value T
	Valid bool
}

func valid[T any](v T) Parsed[T] {
	return Parsed[T]{Value: v, Valid: true}
}

// dateLayouts are tried in order by ParseDate
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006.01.02",
	"2006.1.2",
	"2006年1月2日",
	"20060102",
	"1/2/2006",
	"01/02/2006",
	"01-02-06",
	"1/2/06",
}

// monthDayPattern is the memo fallback when a date cell does not parse
var monthDayPattern = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})`)

// ParseDate parses a source date cell
func ParseDate(raw string) Parsed[time.Time] {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Parsed[time.Time]{}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return valid(t)
		}
	}
	return Parsed[time.Time]{}
}

// FormatDate renders a source date cell as YYYY-MM-DD, or "" when it does not parse
func FormatDate(raw string) string {
	d := ParseDate(raw)
	if !d.Valid {
		return ""
	}
	return d.Value.Format("2006-01-02")
}

// monthDayStrategies are tried in order by FormatMonthDay
var monthDayStrategies = []func(string) (string, bool){
	monthDayFromDate,
	monthDayFromPattern,
}

// FormatMonthDay renders a date cell as MM/DD for memos. Unparseable
// values fall back to the first d/d or d-d pair, then to the raw value.
func FormatMonthDay(raw string) string {
	for _, strategy := range monthDayStrategies {
		if s, ok := strategy(raw); ok {
			return s
		}
	}
	return raw
}

func monthDayFromDate(raw string) (string, bool) {
	d := ParseDate(raw)
	if !d.Valid {
		return "", false
	}
	return d.Value.Format("01/02"), true
}

func monthDayFromPattern(raw string) (string, bool) {
	m := monthDayPattern.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	return fmt.Sprintf("%02d/%02d", month, day), true
}

// ParseAmount parses an amount cell. Thousands separators are accepted.
func ParseAmount(raw string) Parsed[decimal.Decimal] {
	s := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if s == "" {
		return Parsed[decimal.Decimal]{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Parsed[decimal.Decimal]{}
	}
	return valid(d)
}
