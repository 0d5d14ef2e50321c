// Package matcher reconciles listings across marketplaces: given a reference
// product it picks the secondary-marketplace listing most likely to be the
// same physical product.
package matcher

import (
	"regexp"
	"strings"
)

var usedKeywords = []string{
	"renewed", "refurbished", "used", "pre-owned", "open box",
	"like new", "certified refurbished", "seller refurbished",
}

var usedConditions = []string{"pre-owned", "used", "refurbished"}

// IsUsed reports whether a listing title indicates a non-new product.
func IsUsed(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range usedKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// IsUsedCondition reports whether a marketplace condition field indicates a
// non-new product.
func IsUsedCondition(condition string) bool {
	lower := strings.ToLower(condition)
	for _, kw := range usedConditions {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

var (
	parensRe      = regexp.MustCompile(`\(.*?\)`)
	bracketsRe    = regexp.MustCompile(`\[.*?\]`)
	dashesRe      = regexp.MustCompile(`[-\x{2013}\x{2014}]`)
	punctRe       = regexp.MustCompile(`[,;:]`)
	spacesRe      = regexp.MustCompile(`\s+`)
	unlockedRe    = regexp.MustCompile(`(?i)-\s*(Unlocked|Factory Unlocked|GSM Unlocked)`)
	renewedRe     = regexp.MustCompile(`(?i)-\s*(Renewed|Certified Refurbished|Like New)`)
	versionRe     = regexp.MustCompile(`(?i)-\s*(International Version|US Version|Global Version)`)
	withSuffixRe  = regexp.MustCompile(`(?i)-\s*with.*$`)
	storageTailRe = regexp.MustCompile(`(?i),\s*\d+GB.*$`)
)

// CleanTitle lowercases a title and strips parentheticals, dashes and
// list punctuation, leaving single-spaced words for comparison.
func CleanTitle(title string) string {
	t := strings.ToLower(title)
	t = parensRe.ReplaceAllString(t, "")
	t = dashesRe.ReplaceAllString(t, " ")
	t = punctRe.ReplaceAllString(t, " ")
	t = spacesRe.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}

// ShortTitle derives a compact display name from a full marketplace title by
// stripping marketing suffixes, then capping very long names at ten words.
func ShortTitle(fullTitle string) string {
	t := fullTitle
	for _, re := range []*regexp.Regexp{
		parensRe, bracketsRe, unlockedRe, renewedRe, versionRe, withSuffixRe, storageTailRe,
	} {
		t = re.ReplaceAllString(t, "")
	}
	t = strings.TrimSpace(spacesRe.ReplaceAllString(t, " "))

	if len(t) > 80 {
		words := strings.Fields(t)
		if len(words) > 10 {
			words = words[:10]
		}
		t = strings.Join(words, " ")
	}
	return t
}
