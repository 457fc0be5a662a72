package voucher

import "strings"

// dateLetter is the positional column holding the expense date
const dateLetter = "C"

// BuildMemo joins the category's positional cells with single spaces.
// The date column is shortened to MM/DD; blank parts are dropped.
func BuildMemo(row Row, c Category) string {
	layout := c.MemoLayout()
	parts := make([]string, 0, len(layout))
	for _, letter := range layout {
		v := row.At(letter)
		if strings.EqualFold(strings.TrimSpace(letter), dateLetter) {
			v = FormatMonthDay(v)
		}
		if v = strings.TrimSpace(v); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}
