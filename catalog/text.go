package catalog

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// CleanText returns the text content of an HTML fragment with entities
// decoded and whitespace collapsed. Tags act as word separators.
func CleanText(fragment string) string {
	if fragment == "" {
		return ""
	}
	z := html.NewTokenizer(strings.NewReader(fragment))
	var b strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(b.String()), " ")
		case html.TextToken:
			b.Write(z.Text())
		default:
			b.WriteByte(' ')
		}
	}
}

// ParseNumber reads a nutrient value as printed by the catalog. A comma is
// accepted as decimal separator and "tr" (trace) reads as zero. Empty,
// unparsable and non-finite values are unknown and yield nil.
func ParseNumber(value string) *float64 {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil
	}
	if strings.EqualFold(s, "tr") {
		zero := 0.0
		return &zero
	}
	n, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsInf(n, 0) || math.IsNaN(n) {
		return nil
	}
	return &n
}
