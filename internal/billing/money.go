package billing

import (
	"fmt"
	"strings"
)

// FormatMoney renders an amount with two fractional digits and
// currency-specific separators. EUR uses continental grouping (1.234,56);
// every other currency, including unrecognized codes, uses 1,234.56.
func FormatMoney(amount float64, currency string) string {
	thousands, decimal := ",", "."
	if strings.ToUpper(currency) == "EUR" {
		thousands, decimal = ".", ","
	}

	negative := amount < 0
	if negative {
		amount = -amount
	}

	fixed := fmt.Sprintf("%.2f", amount)
	parts := strings.SplitN(fixed, ".", 2)
	intPart, fracPart := parts[0], parts[1]

	grouped := groupThousands(intPart, thousands)
	if negative {
		grouped = "-" + grouped
	}
	return grouped + decimal + fracPart
}

// groupThousands inserts sep every three digits from the right
func groupThousands(digits, sep string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
