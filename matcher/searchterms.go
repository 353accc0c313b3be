package matcher

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// maxSearchTerms caps per-product search traffic against the scrape target.
const maxSearchTerms = 2

var titleCaser = cases.Title(language.BritishEnglish)

// SearchTerms derives retailer search queries for a product name, most
// specific first, deduplicated and capped at maxSearchTerms. Multipack
// products lead with family-pack phrasings because retailers list bulk
// variants under those headings.
func (m *Matcher) SearchTerms(query string) []string {
	name := m.NormalizeName(query)
	if name == "" {
		return nil
	}
	brand, product := m.SplitBrand(name)
	category := m.detectCategory(name)

	var terms []string
	add := func(t string) {
		t = cleanSearchTerm(t)
		if t != "" {
			terms = append(terms, t)
		}
	}

	if m.IsMultipack(name) && brand != "" {
		if category != "" {
			add(fmt.Sprintf("%s %s Family Pack", brand, titleCaser.String(category)))
		}
		add(brand + " Family Pack")
		if pack := m.ExtractQuantity(name).PackSize; pack > 1 {
			add(fmt.Sprintf("%s %d Pack", brand, pack))
		}
		add(brand + " Multipack")
	}

	add(name)
	if brand != "" && product != "" && product != name {
		add(brand + " " + product)
	}
	if product != "" {
		add(product)
	}
	if brand != "" {
		add(brand)
	}

	return dedupeTerms(terms, maxSearchTerms)
}

// detectCategory finds the first category phrase in a name, mapped through
// the synonym table to its canonical phrasing ("beanz" -> "baked beans").
func (m *Matcher) detectCategory(name string) string {
	lower := strings.ToLower(name)
	for _, phrase := range m.cfg.CategoryPhrases {
		if !containsPhrase(lower, phrase) {
			continue
		}
		for _, syn := range m.cfg.CategorySynonyms {
			if phrase == syn.B {
				return syn.A
			}
		}
		return phrase
	}
	return ""
}

// cleanSearchTerm strips characters retailer search boxes choke on. URL
// encoding is the HTTP client's job, not done here.
func cleanSearchTerm(term string) string {
	s := punctuationPattern.ReplaceAllString(term, " ")
	s = strings.ReplaceAll(s, "&", " ")
	s = whitespacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

func dedupeTerms(terms []string, limit int) []string {
	seen := make(map[string]bool, len(terms))
	var out []string
	for _, t := range terms {
		key := strings.ToLower(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out
}
