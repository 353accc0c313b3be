// Package matcher implements fuzzy product matching for UK grocery
// listings: name normalization, brand segmentation, quantity extraction,
// pairwise similarity scoring, tiered match selection, search-term
// generation and retailer price extraction.
package matcher

import (
	"regexp"
	"sort"
	"strings"
)

// DefaultThreshold is the minimum fuzzy score accepted by SelectBest when
// the caller does not supply one.
const DefaultThreshold = 0.7

// MatchType labels which selection tier produced a match.
type MatchType string

const (
	MatchExact           MatchType = "exact"
	MatchSameBrandWeight MatchType = "same_brand_weight"
	MatchFuzzy           MatchType = "fuzzy"
)

// RetailerPrice is a single retailer's price for a listing.
type RetailerPrice struct {
	Retailer     string  `json:"retailer"`
	Price        float64 `json:"price"`
	PricePerUnit string  `json:"price_per_unit,omitempty"`
	Currency     string  `json:"currency"`
}

// Listing is one scraped candidate product.
type Listing struct {
	RawText string                   `json:"raw_text"`
	Name    string                   `json:"name"`
	URL     string                   `json:"url,omitempty"`
	Prices  map[string]RetailerPrice `json:"prices,omitempty"`
}

// MatchResult is the outcome of matching a query against candidates.
// UnitPrice is normalized to pounds per 100g or 100ml.
type MatchResult struct {
	Name             string    `json:"name"`
	Retailer         string    `json:"retailer,omitempty"`
	Price            *float64  `json:"price,omitempty"`
	UnitPrice        *float64  `json:"unit_price,omitempty"`
	Weight           *float64  `json:"weight,omitempty"`
	Confidence       float64   `json:"confidence"`
	MatchType        MatchType `json:"match_type"`
	ValidationIssues []string  `json:"validation_issues,omitempty"`
	URL              string    `json:"url,omitempty"`
}

// Matcher holds the immutable lexicon config plus every pattern compiled
// from it. Construct once with New and share freely; all methods are safe
// for concurrent use.
type Matcher struct {
	cfg *Config

	// brands sorted longest-first for greedy segmentation, with their
	// lowercase forms aligned by index.
	brands      []string
	brandsLower []string

	// aliasGroup maps a lowercase brand spelling to its alias group id.
	aliasGroup map[string]int

	promoPatterns  []*regexp.Regexp
	removePatterns []*regexp.Regexp
	variantPattern *regexp.Regexp
	flavorPattern  *regexp.Regexp

	// Per-retailer price patterns, probed in priority order.
	retailerPatterns map[string][]*regexp.Regexp
}

// New compiles a Matcher from cfg. The config is not copied; callers must
// not mutate it after this call.
func New(cfg *Config) *Matcher {
	m := &Matcher{cfg: cfg}

	m.brands = append([]string(nil), cfg.Brands...)
	sort.SliceStable(m.brands, func(i, j int) bool {
		return len(m.brands[i]) > len(m.brands[j])
	})
	m.brandsLower = make([]string, len(m.brands))
	for i, b := range m.brands {
		m.brandsLower[i] = strings.ToLower(b)
	}

	m.aliasGroup = make(map[string]int)
	for gid, group := range cfg.BrandAliasGroups {
		for _, name := range group {
			m.aliasGroup[strings.ToLower(name)] = gid
		}
	}

	for _, src := range cfg.PromoMarkers {
		m.promoPatterns = append(m.promoPatterns, regexp.MustCompile(`(?i)`+src))
	}
	for _, src := range cfg.RemovePhrases {
		m.removePatterns = append(m.removePatterns, regexp.MustCompile(`(?i)`+src))
	}

	m.variantPattern = compilePhraseSet(cfg.VariantMarkers)
	m.flavorPattern = compilePhraseSet(cfg.FlavorMarkers)

	m.retailerPatterns = make(map[string][]*regexp.Regexp, len(cfg.Retailers))
	for _, r := range cfg.Retailers {
		m.retailerPatterns[r] = compileRetailerPatterns(r, cfg.PriceWindow)
	}
	return m
}

// NewDefault builds a Matcher with the full default lexicon.
func NewDefault() *Matcher {
	return New(DefaultConfig())
}

// Config returns the config the matcher was built with.
func (m *Matcher) Config() *Config {
	return m.cfg
}

// compilePhraseSet builds one alternation matching any phrase on word
// boundaries, longest phrase first so "reduced sugar" beats "sugar".
// Returns nil for an empty phrase list.
func compilePhraseSet(phrases []string) *regexp.Regexp {
	if len(phrases) == 0 {
		return nil
	}
	sorted := append([]string(nil), phrases...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return len(sorted[i]) > len(sorted[j])
	})
	quoted := make([]string, len(sorted))
	for i, p := range sorted {
		quoted[i] = regexp.QuoteMeta(strings.ToLower(p))
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, `|`) + `)\b`)
}

// IsPromotional reports whether raw listing text carries promotional
// wording such as loyalty-card pricing or multi-buy offers.
func (m *Matcher) IsPromotional(raw string) bool {
	for _, p := range m.promoPatterns {
		if p.MatchString(raw) {
			return true
		}
	}
	return false
}
