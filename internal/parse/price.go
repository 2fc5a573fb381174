package parse

import (
	"strconv"
	"strings"
)

// Amount converts a currency string to a float. It handles both
// decimal-comma ("R$ 1.234,56") and decimal-point ("$1,234.56") conventions:
// when both separators appear, the later one is the decimal mark; a lone
// separator is treated as decimal only when one or two digits follow it,
// otherwise as a thousands separator ("1.499" -> 1499).
func Amount(text string) (float64, bool) {
	filtered := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == ',' || r == '.' {
			return r
		}
		return -1
	}, text)
	if filtered == "" {
		return 0, false
	}

	lastComma := strings.LastIndexByte(filtered, ',')
	lastDot := strings.LastIndexByte(filtered, '.')

	var normalized string
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			normalized = strings.ReplaceAll(filtered, ".", "")
			normalized = strings.Replace(normalized, ",", ".", 1)
		} else {
			normalized = strings.ReplaceAll(filtered, ",", "")
		}
	case lastComma >= 0:
		normalized = normalizeSingle(filtered, ',', lastComma)
	case lastDot >= 0:
		normalized = normalizeSingle(filtered, '.', lastDot)
	default:
		normalized = filtered
	}

	v, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalizeSingle(s string, sep byte, last int) string {
	digitsAfter := len(s) - last - 1
	if strings.Count(s, string(sep)) == 1 && digitsAfter >= 1 && digitsAfter <= 2 {
		return strings.Replace(s, string(sep), ".", 1)
	}
	return strings.ReplaceAll(s, string(sep), "")
}
