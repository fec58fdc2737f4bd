// Package money formats rupee amounts for display.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
)

const Symbol = "₹"

// Format renders d with two decimals and Indian digit grouping:
// 123456.5 becomes ₹1,23,456.50.
func Format(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString(Symbol)
	b.WriteString(group(whole))
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// group inserts separators after the last three digits and then every two.
func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(append(parts, tail), ",")
}

// Parse reads a decimal amount from user input, tolerating the symbol and
// group separators produced by Format.
func Parse(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, Symbol)
	s = strings.ReplaceAll(s, ",", "")
	return decimal.NewFromString(strings.TrimSpace(s))
}
