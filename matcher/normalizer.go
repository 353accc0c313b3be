package matcher

import (
	"regexp"
	"strings"
)

// Scraped listing text arrives concatenated without separators and with
// price fragments glued onto the name ("£1.4017.5p per 100g415g6Heinz...").
// Normalization strips the price noise first, then re-inserts the word
// boundaries the concatenation destroyed.
var (
	poundPricePattern = regexp.MustCompile(`£\s*\d+(?:\.\d+)?`)
	pencePricePattern = regexp.MustCompile(`\b\d+(?:\.\d+)?p\b`)
	perUnitPattern    = regexp.MustCompile(`(?i)\d+(?:\.\d+)?p?\s*per\s*100\s*(?:g|ml)`)
	eachPattern       = regexp.MustCompile(`(?i)\d+(?:\.\d+)?\s*each\b`)
	moreSizesPattern  = regexp.MustCompile(`(?i)\b\d+\s+more\s+sizes?\b`)

	// Boundary insertion rules, applied in order.
	unitBoundary       = regexp.MustCompile(`(\d+(?:\.\d+)?(?:kg|g|ml|l))([A-Z0-9])`)
	digitUpperBoundary = regexp.MustCompile(`(\d)([A-Z])`)
	lowerUpperBoundary = regexp.MustCompile(`([a-z])([A-Z])`)
	lowerDigitBoundary = regexp.MustCompile(`([a-z])(\d)`)

	trailingNumbersPattern = regexp.MustCompile(`(?:\s+\d+(?:\.\d+)?)+\s*$`)
	punctuationPattern     = regexp.MustCompile(`[^\w\s'&-]`)
	whitespacePattern      = regexp.MustCompile(`\s+`)
)

// NormalizeName cleans raw scraped listing text into a canonical product
// name. Original casing is preserved; only noise is removed and word
// boundaries restored. Idempotent: normalizing a normalized name is a
// no-op. Empty or whitespace-only input yields "".
func (m *Matcher) NormalizeName(raw string) string {
	s := raw

	// Price fragments first, while the currency symbols still anchor them.
	// "per 100g" before bare pence so "17.5p per 100g" goes in one piece.
	s = poundPricePattern.ReplaceAllString(s, " ")
	s = perUnitPattern.ReplaceAllString(s, " ")
	s = pencePricePattern.ReplaceAllString(s, " ")
	s = eachPattern.ReplaceAllString(s, " ")
	s = moreSizesPattern.ReplaceAllString(s, " ")

	// Keep apostrophes, ampersands and hyphens; they carry brand identity.
	s = punctuationPattern.ReplaceAllString(s, " ")

	// Restore boundaries lost to concatenation: "415g6Heinz" -> "415g 6 Heinz",
	// "BeansBaked" -> "Beans Baked", "Beanz6" -> "Beanz 6".
	s = unitBoundary.ReplaceAllString(s, "$1 $2")
	s = digitUpperBoundary.ReplaceAllString(s, "$1 $2")
	s = lowerUpperBoundary.ReplaceAllString(s, "$1 $2")
	s = lowerDigitBoundary.ReplaceAllString(s, "$1 $2")

	s = whitespacePattern.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)

	// Leftover bare counts at the end are scraping artefacts.
	s = trailingNumbersPattern.ReplaceAllString(s, "")

	return strings.TrimSpace(s)
}

var (
	quantityTokenPattern = regexp.MustCompile(`(?i)\b\d+(?:\.\d+)?\s*(?:kg|g|ml|l|oz|lb|packs?|pcs?|pieces?|items?|cans?|bottles?)\b`)
	multiplierPattern    = regexp.MustCompile(`(?i)\b\d+\s*[x×]\b`)
	bareNumberPattern    = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
)

// cleanForComparison lowers a name and strips quantity tokens, multiplier
// phrases and stray numbers so token comparison sees only descriptive words.
func cleanForComparison(name string) string {
	s := strings.ToLower(name)
	s = quantityTokenPattern.ReplaceAllString(s, " ")
	s = multiplierPattern.ReplaceAllString(s, " ")
	s = bareNumberPattern.ReplaceAllString(s, " ")
	s = punctuationPattern.ReplaceAllString(s, " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// exactKey canonicalizes a name for tier-one equality: normalized,
// lowercased, promo wording and punctuation stripped.
func (m *Matcher) exactKey(name string) string {
	s := strings.ToLower(m.NormalizeName(name))
	for _, p := range m.removePatterns {
		s = p.ReplaceAllString(s, " ")
	}
	s = punctuationPattern.ReplaceAllString(s, " ")
	s = strings.ReplaceAll(s, "'", "")
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "&", " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
