package marketplace

import (
	"regexp"
	"strconv"
	"strings"
)

var ratingRe = regexp.MustCompile(`\d+\.?\d*`)

// ParsePrice converts a display price like "$1,299.99" to a float. Returns 0
// for empty or unparseable input.
func ParsePrice(s string) float64 {
	cleaned := strings.TrimSpace(strings.NewReplacer("$", "", ",", "").Replace(s))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// ParseRating extracts the leading number from a display rating like
// "4.5 out of 5 stars". Returns 0 when no number is present.
func ParseRating(s string) float64 {
	match := ratingRe.FindString(s)
	if match == "" {
		return 0
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return v
}
