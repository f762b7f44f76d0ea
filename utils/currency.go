package utils

import (
	"fmt"
	"math"
	"strings"
)

// RoundCents rounds an amount to the nearest cent. Line totals are computed
// with this before summing so order totals are exact to the cent.
func RoundCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatCurrency formats an amount as a display string with thousands
// separators, e.g. 15000.5 -> "15,000.50".
func FormatCurrency(amount float64) string {
	formatted := fmt.Sprintf("%.2f", RoundCents(amount))

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	negative := strings.HasPrefix(integerPart, "-")
	if negative {
		integerPart = integerPart[1:]
	}

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	result := strings.Join(groups, ",") + "." + decimalPart
	if negative {
		result = "-" + result
	}
	return result
}
