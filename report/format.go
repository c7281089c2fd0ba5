// Package report formats projections for terminal output.
package report

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR formats a rupee amount with Indian digit grouping, rounded to
// whole rupees. e.g. 800000 -> "₹8,00,000", -1234.5 -> "-₹1,235"
func FormatINR(amount float64) string {
	rounded := decimal.NewFromFloat(amount).Round(0)

	sign := ""
	if rounded.IsNegative() {
		sign = "-"
		rounded = rounded.Neg()
	}

	return sign + "₹" + groupIndian(rounded.String())
}

// FormatLakh abbreviates large amounts the way they are usually spoken:
// 1250000 -> "₹12.50 L", 25000000 -> "₹2.50 Cr".
func FormatLakh(amount float64) string {
	d := decimal.NewFromFloat(amount)
	abs := d.Abs()

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}

	switch {
	case abs.GreaterThanOrEqual(decimal.NewFromInt(10_000_000)):
		return fmt.Sprintf("%s₹%s Cr", sign, abs.Div(decimal.NewFromInt(10_000_000)).StringFixed(2))
	case abs.GreaterThanOrEqual(decimal.NewFromInt(100_000)):
		return fmt.Sprintf("%s₹%s L", sign, abs.Div(decimal.NewFromInt(100_000)).StringFixed(2))
	default:
		return FormatINR(amount)
	}
}

// FormatPercent renders a fraction as a percentage, 0.083 -> "8.30%".
func FormatPercent(rate float64) string {
	return decimal.NewFromFloat(rate).Shift(2).StringFixed(2) + "%"
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}

	return strings.Join(groups, ",") + "," + tail
}
