// Package money provides currency-amount helpers. Amounts are carried as
// integer cents everywhere in the application; formatting happens only at
// presentation boundaries and never feeds back into arithmetic.
package money

import (
	"fmt"
	"math"
	"strings"
)

// RoundCents rounds a float amount of cents to the nearest whole cent.
func RoundCents(v float64) int64 {
	return int64(math.Round(v))
}

// FormatCHF renders an amount of cents as a Swiss-franc string with exactly
// two fractional digits and an apostrophe thousands separator, e.g.
// "CHF 1'234.50".
func FormatCHF(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	francs := cents / 100
	rest := cents % 100

	grouped := groupThousands(francs)
	out := fmt.Sprintf("CHF %s.%02d", grouped, rest)
	if negative {
		out = "-" + out
	}
	return out
}

func groupThousands(v int64) string {
	digits := fmt.Sprintf("%d", v)
	if len(digits) <= 3 {
		return digits
	}

	var parts []string
	for len(digits) > 3 {
		parts = append([]string{digits[len(digits)-3:]}, parts...)
		digits = digits[:len(digits)-3]
	}
	parts = append([]string{digits}, parts...)
	return strings.Join(parts, "'")
}
