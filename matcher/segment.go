package matcher

import (
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"
)

var quantityWordPattern = regexp.MustCompile(`(?i)^\d+(?:\.\d+)?(?:kg|g|ml|l|oz|lb|packs?|pcs?|pieces?|items?)?$`)

// SplitBrand segments a normalized name into brand and product. The brand
// lexicon is scanned longest entry first; on a hit the canonical lexicon
// casing is returned and the product is everything after the brand. With
// no lexicon hit the first word is taken as the brand unless it is a stop
// word or a quantity token. The product part never comes back empty: a
// name that is all brand falls back to the full name.
func (m *Matcher) SplitBrand(name string) (brand, product string) {
	brand, product, _ = m.splitBrand(name)
	return brand, product
}

// splitBrand additionally reports whether the brand came from the lexicon.
// Only lexicon hits count as recognised for the scorer's brand gate; a
// first-word fallback guess never blocks a match.
func (m *Matcher) splitBrand(name string) (brand, product string, known bool) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", "", false
	}
	lower := strings.ToLower(trimmed)

	for i, bl := range m.brandsLower {
		idx := indexWord(lower, bl)
		if idx < 0 {
			continue
		}
		product = strings.TrimLeft(trimmed[idx+len(bl):], " -'")
		if strings.TrimSpace(product) == "" {
			product = trimmed
		}
		return m.brands[i], strings.TrimSpace(product), true
	}

	words := strings.Fields(trimmed)
	if len(words) < 2 {
		return "", trimmed, false
	}
	first := strings.ToLower(words[0])
	if m.cfg.StopWords[first] || quantityWordPattern.MatchString(first) {
		return "", trimmed, false
	}
	return words[0], strings.Join(words[1:], " "), false
}

// indexWord finds sub in s on word boundaries, so "HP" never fires inside
// "Philadelphia". Both arguments must already be lowercase.
func indexWord(s, sub string) int {
	from := 0
	for {
		i := strings.Index(s[from:], sub)
		if i < 0 {
			return -1
		}
		i += from
		startOK := i == 0 || !isWordByte(s[i-1])
		end := i + len(sub)
		endOK := end == len(s) || !isWordByte(s[end])
		if startOK && endOK {
			return i
		}
		from = i + 1
	}
}

func isWordByte(b byte) bool {
	return b == '_' || (b >= '0' && b <= '9') || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// normalizeBrand lowers a brand and drops apostrophes, periods and hyphens
// so "Sainsbury's" and "Sainsburys" compare equal.
func normalizeBrand(b string) string {
	s := strings.ToLower(strings.TrimSpace(b))
	s = strings.NewReplacer("'", "", ".", "", "-", " ").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// AreBrandsSimilar reports whether two brand strings name the same brand:
// equal after light normalization, or members of one alias group. This is
// the strict check the scorer gates on.
func (m *Matcher) AreBrandsSimilar(a, b string) bool {
	na, nb := normalizeBrand(a), normalizeBrand(b)
	if na == "" || nb == "" {
		return false
	}
	if na == nb {
		return true
	}
	ga, okA := m.lookupAliasGroup(a)
	gb, okB := m.lookupAliasGroup(b)
	return okA && okB && ga == gb
}

// BrandSimilarity returns 1.0 for brands the strict check accepts and a
// Jaro-Winkler similarity otherwise. Used by the selector's same-brand
// tier, never by the scorer's brand gate.
func (m *Matcher) BrandSimilarity(a, b string) float64 {
	if m.AreBrandsSimilar(a, b) {
		return 1.0
	}
	na, nb := normalizeBrand(a), normalizeBrand(b)
	if na == "" || nb == "" {
		return 0
	}
	return matchr.JaroWinkler(na, nb, true)
}

func (m *Matcher) lookupAliasGroup(brand string) (int, bool) {
	if gid, ok := m.aliasGroup[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return gid, true
	}
	gid, ok := m.aliasGroup[normalizeBrand(brand)]
	return gid, ok
}
