// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// FormatMoney formats a dollar amount with comma separators, keeping
// cents only when the value has them. Negative values get a leading
// minus outside the dollar sign: -$4,583.33.
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	whole := int64(v)
	cents := math.Round((v - float64(whole)) * 100)
	if cents >= 100 {
		whole++
		cents = 0
	}

	if cents == 0 {
		return fmt.Sprintf("%s$%s", sign, FormatNumber(whole))
	}
	return fmt.Sprintf("%s$%s.%02d", sign, FormatNumber(whole), int64(cents))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-1 float as a percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// FormatMultiplier renders a scenario multiplier as a signed delta:
// 1.15 -> "+15%", 0.90 -> "-10%", 1.00 -> "—".
func FormatMultiplier(m float64) string {
	delta := math.Round((m - 1) * 100)
	if delta == 0 {
		return "—"
	}
	return fmt.Sprintf("%+.0f%%", delta)
}

// FormatWeekRange renders a week's span compactly: "Jan 12 – Jan 18".
func FormatWeekRange(start, end time.Time) string {
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2"))
}

// FormatDate renders a date in the canonical form used across output.
func FormatDate(t time.Time) string {
	return t.Format("2006-01-02")
}
