package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	priceJunkExpr = regexp.MustCompile(`[^\d,.]`)
	numberExpr    = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParsePrice extracts a numeric price from free-form text such as
// "150,000 €". Commas are treated as thousands separators. Empty or
// unparseable input yields 0, the "unknown" sentinel.
func ParsePrice(text string) float64 {
	if text == "" {
		return 0
	}

	cleaned := priceJunkExpr.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return value
}

// ParseArea extracts the first integer or decimal number from text such as
// "75.5 m²". Returns 0 when the text carries no number.
func ParseArea(text string) float64 {
	if text == "" {
		return 0
	}

	match := numberExpr.FindString(text)
	if match == "" {
		return 0
	}

	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value
}
