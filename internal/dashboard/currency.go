package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrency renders d with two decimals and comma thousand separators,
// e.g. "R$ 1,234.56".
func FormatCurrency(symbol string, d decimal.Decimal) string {
	fixed := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(fixed, "-") {
		sign, fixed = "-", fixed[1:]
	}
	intPart, frac, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := sign + b.String() + "." + frac
	if symbol == "" {
		return out
	}
	return symbol + " " + out
}
