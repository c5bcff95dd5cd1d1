// Package currency formats monetary amounts using the Brazilian convention:
// "R$" prefix, "." as thousands separator, "," as decimal separator.
package currency

import (
	"fmt"
	"math"
	"strings"
)

// Format renders an amount as Brazilian currency, e.g. 1234.5 -> "R$ 1.234,50".
func Format(amount float64) string {
	negative := amount < 0 || math.Signbit(amount)
	cents := int64(math.Round(math.Abs(amount) * 100))

	whole := cents / 100
	frac := cents % 100

	digits := fmt.Sprintf("%d", whole)
	var groups []string
	for len(digits) > 3 {
		groups = append([]string{digits[len(digits)-3:]}, groups...)
		digits = digits[:len(digits)-3]
	}
	groups = append([]string{digits}, groups...)

	out := fmt.Sprintf("R$ %s,%02d", strings.Join(groups, "."), frac)
	if negative && cents > 0 {
		out = fmt.Sprintf("R$ -%s,%02d", strings.Join(groups, "."), frac)
	}
	return out
}

// FormatPtr renders an optional amount; nil renders as "R$ 0,00".
func FormatPtr(amount *float64) string {
	if amount == nil {
		return Format(0)
	}
	return Format(*amount)
}
