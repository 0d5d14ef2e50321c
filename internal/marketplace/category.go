package marketplace

import (
	"regexp"
	"strings"
)

// categoryPathRules maps substrings of Amazon category path nodes to internal
// categories. Checked leaf-first, most specific node wins.
var categoryPathRules = []struct {
	category string
	keywords []string
}{
	{"Electronics", []string{"cell phone", "smartphone", "electronics", "computer", "tablet", "laptop", "camera", "tv", "audio", "headphone", "wearable", "smart home", "video game"}},
	{"Beauty", []string{"beauty", "makeup", "skincare", "cosmetic", "fragrance", "personal care"}},
	{"Home", []string{"home", "kitchen", "furniture", "bedding", "appliance", "garden", "patio"}},
	{"Food", []string{"grocery", "food", "beverage", "snack", "gourmet"}},
	{"Fashion", []string{"clothing", "shoes", "fashion", "jewelry", "watch", "accessories", "handbag", "luggage"}},
	{"Sports", []string{"sport", "fitness", "outdoor", "exercise", "athletic"}},
	{"Books", []string{"book", "kindle", "magazine", "textbook"}},
	{"Toys", []string{"toy", "game", "puzzle"}},
	{"Health", []string{"health", "medical", "vitamin", "supplement", "wellness"}},
	{"Office", []string{"office", "school", "stationery"}},
	{"Pets", []string{"pet", "dog", "cat", "animal"}},
}

// keywordRules is the title-based fallback, checked in order.
var keywordRules = []struct {
	category string
	pattern  *regexp.Regexp
}{
	{"Electronics", regexp.MustCompile(`phone|laptop|tablet|computer|headphone|speaker|camera|tv|monitor|keyboard|mouse|smartwatch|earbuds|airpods|ipad|macbook|gaming|console|playstation|xbox|nintendo|electronics|cable|charger|adapter|router|printer`)},
	{"Beauty", regexp.MustCompile(`beauty|makeup|skincare|cosmetic|perfume|fragrance|lipstick|foundation|serum|moisturizer|shampoo|conditioner|lotion|cream|mascara|eyeliner|nail polish`)},
	{"Home", regexp.MustCompile(`furniture|kitchen|home|bedding|decor|lamp|table|sofa|pillow|blanket|curtain|rug|vacuum|appliance|cookware|utensil|storage|organizer`)},
	{"Food", regexp.MustCompile(`food|snack|coffee|tea|chocolate|candy|grocery|organic|protein|chips|cookies|cereal|pasta|sauce|spice`)},
	{"Fashion", regexp.MustCompile(`clothing|shoes|dress|shirt|pants|jacket|coat|boots|sneakers|fashion|bag|wallet|jewelry|sunglasses|hat|scarf|gloves|belt|tie|jeans`)},
	{"Sports", regexp.MustCompile(`sports|fitness|gym|yoga|exercise|bike|bicycle|treadmill|dumbbell|weights|running|tennis|basketball|soccer|football|swimming|resistance band|cooler|thermos|tent|camping`)},
	{"Books", regexp.MustCompile(`book|novel|textbook|kindle|ebook|magazine|comic|manga|cookbook|guide|dictionary|encyclopedia|bestseller|paperback|hardcover`)},
	{"Toys", regexp.MustCompile(`toy|doll|lego|puzzle|board game|action figure|stuffed animal|playset|barbie|hot wheels|nerf|pokemon|minecraft|rubik`)},
	{"Health", regexp.MustCompile(`health|medical|medicine|thermometer|blood pressure|first aid|bandage|supplements|probiotic|immune|pain relief|aspirin|allergy|vitamin|multivitamin`)},
	{"Office", regexp.MustCompile(`office|desk|pen|pencil|notebook|paper|stapler|folder|calculator|planner|marker|highlighter|binder|supplies|chair.*office|standing desk`)},
	{"Pets", regexp.MustCompile(`pet|dog|cat|puppy|kitten|fish|bird|hamster|collar|leash|food.*pet|treat|bed.*pet|cage|aquarium|litter|carrier.*pet`)},
}

// MapCategoryPath maps an Amazon category path to an internal category,
// walking from the leaf toward the root. Returns "" when no node matches.
func MapCategoryPath(path []string) string {
	for i := len(path) - 1; i >= 0; i-- {
		node := strings.ToLower(path[i])
		for _, rule := range categoryPathRules {
			for _, kw := range rule.keywords {
				if strings.Contains(node, kw) {
					return rule.category
				}
			}
		}
	}
	return ""
}

// CategorizeByKeywords guesses a category from the title. Defaults to
// Electronics when nothing matches.
func CategorizeByKeywords(title string) string {
	lower := strings.ToLower(title)
	for _, rule := range keywordRules {
		if rule.pattern.MatchString(lower) {
			return rule.category
		}
	}
	return "Electronics"
}

// Categorize prefers the marketplace category path and falls back to title
// keywords.
func Categorize(title string, path []string) string {
	if cat := MapCategoryPath(path); cat != "" {
		return cat
	}
	return CategorizeByKeywords(title)
}
