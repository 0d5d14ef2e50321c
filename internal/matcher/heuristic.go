package matcher

import (
	"context"
	"regexp"
	"strings"
)

// HeuristicScorer scores title similarity locally from brand, model, spec and
// word overlap. It is the default scorer and the fallback when no external
// similarity service is configured.
type HeuristicScorer struct{}

// NewHeuristicScorer returns the local scorer.
func NewHeuristicScorer() *HeuristicScorer { return &HeuristicScorer{} }

var knownBrands = []string{
	"apple", "samsung", "google", "sony", "lg", "motorola", "oneplus",
	"dell", "hp", "lenovo", "asus", "acer", "microsoft",
	"bose", "beats", "jbl", "airpods",
	"nike", "adidas", "puma",
}

var modelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)iphone\s*(\d+\s*pro\s*max|\d+\s*pro|\d+\s*plus|\d+)`),
	regexp.MustCompile(`(?i)galaxy\s*s\d+\s*(ultra|plus)?`),
	regexp.MustCompile(`(?i)pixel\s*\d+\s*(pro|xl)?`),
	regexp.MustCompile(`(?i)macbook\s*(pro|air)`),
	regexp.MustCompile(`(?i)ipad\s*(pro|air|mini)?`),
	regexp.MustCompile(`(?i)airpods\s*(pro|max)?`),
}

var storageRe = regexp.MustCompile(`(?i)(\d+)\s*(gb|tb)`)

var knownColors = []string{
	"rose gold", "space gray", "red", "black", "white", "blue", "green",
	"yellow", "purple", "silver", "gold", "midnight", "starlight",
}

type keyInfo struct {
	brand   string
	model   string
	storage string
	color   string
	specs   []string
}

func extractKeyInfo(title string) keyInfo {
	lower := strings.ToLower(title)
	var info keyInfo

	for _, brand := range knownBrands {
		if strings.Contains(lower, brand) {
			info.brand = brand
			break
		}
	}

	for _, re := range modelPatterns {
		if m := re.FindString(title); m != "" {
			info.model = strings.TrimSpace(strings.ToLower(m))
			break
		}
	}

	if m := storageRe.FindString(title); m != "" {
		info.storage = strings.ToLower(m)
		info.specs = append(info.specs, info.storage)
	}

	for _, color := range knownColors {
		if strings.Contains(lower, color) {
			info.color = color
			info.specs = append(info.specs, color)
			break
		}
	}

	return info
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(rb); i++ {
		curr[0] = i
		for j := 1; j <= len(ra); j++ {
			if rb[i-1] == ra[j-1] {
				curr[j] = prev[j-1]
			} else {
				curr[j] = min(prev[j-1], min(curr[j-1], prev[j])) + 1
			}
		}
		prev, curr = curr, prev
	}
	return prev[len(ra)]
}

func compareModels(m1, m2 string) float64 {
	if m1 == m2 {
		return 1.0
	}
	c1 := strings.ReplaceAll(m1, " ", "")
	c2 := strings.ReplaceAll(m2, " ", "")
	if c1 == c2 {
		return 0.95
	}

	maxLen := max(len(c1), len(c2))
	if maxLen == 0 {
		return 0
	}
	sim := 1 - float64(levenshtein(c1, c2))/float64(maxLen)
	if sim < 0 {
		return 0
	}
	return sim
}

func compareSpecs(i1, i2 keyInfo) float64 {
	matched, total := 0.0, 0.0

	if i1.storage != "" && i2.storage != "" {
		if i1.storage == i2.storage {
			matched++
		}
		total++
	}
	if i1.color != "" && i2.color != "" {
		if i1.color == i2.color {
			matched++
		}
		total++
	}

	if len(i1.specs) > 0 || len(i2.specs) > 0 {
		set1 := make(map[string]bool, len(i1.specs))
		for _, s := range i1.specs {
			set1[s] = true
		}
		common := 0
		set2 := make(map[string]bool, len(i2.specs))
		for _, s := range i2.specs {
			set2[s] = true
		}
		for s := range set1 {
			if set2[s] {
				common++
			}
		}
		matched += float64(common) / float64(max(len(set1), len(set2)))
		total++
	}

	if total == 0 {
		return 0
	}
	return matched / total
}

func compareWords(a, b string) float64 {
	set1 := wordSet(a)
	set2 := wordSet(b)
	if len(set1) == 0 || len(set2) == 0 {
		return 0
	}
	common := 0
	for w := range set1 {
		if set2[w] {
			common++
		}
	}
	return float64(common) / float64(max(len(set1), len(set2)))
}

func wordSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(s) {
		if len(w) > 2 {
			set[w] = true
		}
	}
	return set
}

// Score implements Scorer. Brand carries 30% weight, model 40%, specs 20%
// and word overlap 10%; absent signals drop out of the denominator.
func (s *HeuristicScorer) Score(_ context.Context, titleA, titleB string) (float64, error) {
	if titleA == "" || titleB == "" {
		return 0, nil
	}

	clean1 := CleanTitle(titleA)
	clean2 := CleanTitle(titleB)
	if clean1 == clean2 {
		return 1.0, nil
	}

	info1 := extractKeyInfo(titleA)
	info2 := extractKeyInfo(titleB)

	score, weights := 0.0, 0.0

	if info1.brand != "" && info2.brand != "" {
		if info1.brand == info2.brand {
			score += 0.3
		}
		weights += 0.3
	}

	if info1.model != "" && info2.model != "" {
		score += compareModels(info1.model, info2.model) * 0.4
		weights += 0.4
	}

	score += compareSpecs(info1, info2) * 0.2
	weights += 0.2

	score += compareWords(clean1, clean2) * 0.1
	weights += 0.1

	return score / weights, nil
}
