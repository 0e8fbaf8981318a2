package billing

import (
	"fmt"
	"strconv"
)

// Amounts are integer minor units (micro-USDC). Totals are rendered as
// 6-decimal strings so monetary values never pass through floats.
const (
	Currency      = "USDC"
	minorPerWhole = 1_000_000
)

// FormatMinorUnits renders minor units as a decimal string:
// 1000 -> "0.001000", 5_250_000 -> "5.250000".
func FormatMinorUnits(amount int64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	whole := amount / minorPerWhole
	frac := amount % minorPerWhole
	return fmt.Sprintf("%s%s.%06d", sign, strconv.FormatInt(whole, 10), frac)
}
