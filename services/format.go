package services

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatCLP formats an amount as Chilean pesos: rounded to whole pesos,
// thousands separated by dots (e.g. $1.234.567).
func FormatCLP(amount float64) string {
	rounded := int64(math.Round(amount))
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	result := "$" + groupThousands(strconv.FormatInt(rounded, 10))
	if negative {
		result = "-" + result
	}
	return result
}

// FormatCLPInt is FormatCLP for integer amounts.
func FormatCLPInt(amount int64) string {
	return FormatCLP(float64(amount))
}

// FormatNumber formats an integer with dot thousands separators and no
// currency sign.
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + groupThousands(strconv.FormatInt(-n, 10))
	}
	return groupThousands(strconv.FormatInt(n, 10))
}

// groupThousands inserts a dot every three digits from the right.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatM2 formats an area with two decimals.
func FormatM2(area float64) string {
	return fmt.Sprintf("%.2f m²", area)
}

// FormatM3 formats a volume with two decimals.
func FormatM3(volume float64) string {
	return fmt.Sprintf("%.2f m³", volume)
}

// formatDim formats a measured dimension the way it was typed: integers
// without decimals, fractions with as many digits as needed.
func formatDim(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
