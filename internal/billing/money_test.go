package billing

import "testing"

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		currency string
		want     string
	}{
		{"eur grouping", 1234.5, "EUR", "1.234,50"},
		{"usd grouping", 1234.5, "USD", "1,234.50"},
		{"negative eur", -42, "EUR", "-42,00"},
		{"gbp millions", 1000000, "GBP", "1,000,000.00"},
		{"unknown code falls back", 9876.543, "XXX", "9,876.54"},
		{"lowercase eur", 1234.5, "eur", "1.234,50"},
		{"zero", 0, "USD", "0.00"},
		{"small negative usd", -0.5, "USD", "-0.50"},
		{"no grouping needed", 999.99, "EUR", "999,99"},
		{"exact thousand", 1000, "USD", "1,000.00"},
		{"rounding", 2.006, "USD", "2.01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatMoney(tt.amount, tt.currency)
			if got != tt.want {
				t.Errorf("FormatMoney(%v, %q) = %q, want %q", tt.amount, tt.currency, got, tt.want)
			}
		})
	}
}
