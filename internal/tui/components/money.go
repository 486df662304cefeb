package components

import (
	"fmt"
	"math"
	"strings"
)

// FormatTRY formats an amount as Turkish lira using Turkish digit
// grouping: "₺12.500" or "₺12.500,50". Whole amounts drop the decimals.
func FormatTRY(amount float64) string {
	negative := amount < 0
	amount = math.Abs(amount)

	cents := int64(math.Round(amount * 100))
	whole := cents / 100
	frac := cents % 100

	grouped := groupThousands(whole)

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("₺")
	b.WriteString(grouped)
	if frac != 0 {
		fmt.Fprintf(&b, ",%02d", frac)
	}
	return b.String()
}

// groupThousands inserts '.' separators every three digits, Turkish style.
func groupThousands(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}

	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return strings.Join(parts, ".")
}
