// internal/utils/currency.go
package utils

import (
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Prices are Euro throughout; formatting matches the en-IE locale used by
// the web UI (comma grouping, two fraction digits).

var euroPrinter = message.NewPrinter(language.MustParse("en-IE"))

// FormatEuro renders an amount as a Euro string, e.g. €1,234.50.
func FormatEuro(amount float64) string {
	return "€" + euroPrinter.Sprintf("%.2f", amount)
}

// FormatEuroAmount renders the amount without the currency symbol.
func FormatEuroAmount(amount float64) string {
	return euroPrinter.Sprintf("%.2f", amount)
}

// ParseEuro parses strings like "€1,234.50" or "1234.5" back to a number.
// Unparseable input yields 0, mirroring the tolerant UI helper.
func ParseEuro(s string) float64 {
	cleaned := strings.NewReplacer("€", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// Percentage returns amount as a percentage of total, 0 when total is 0.
func Percentage(amount, total float64) float64 {
	if total == 0 {
		return 0
	}
	return (amount / total) * 100
}
