package matcher

// PriceBand is the plausible shelf-price range for a product category.
type PriceBand struct {
	Category string
	Min      float64
	Max      float64
}

// CategoryConflict penalises name pairs that sit in incompatible product
// categories. It fires when one name contains any phrase from A and the
// other contains any phrase from B (in either direction).
type CategoryConflict struct {
	A       []string
	B       []string
	Penalty float64
}

// SynonymPair links two phrasings of the same category across retailers,
// e.g. Heinz labels baked beans as "Beanz".
type SynonymPair struct {
	A string
	B string
}

// Config holds every lookup table the matcher consults. It is built once
// and treated as immutable afterwards; all tables are injected so tests
// and callers can supply trimmed or extended lexicons.
type Config struct {
	// Brands is the known-brand lexicon with canonical casing. New sorts
	// it longest-first so multi-word brands win over their prefixes.
	Brands []string

	// BrandAliasGroups lists spelling variants that name the same brand.
	BrandAliasGroups [][]string

	// StopWords are generic tokens that must never be mistaken for a
	// brand when falling back to first-word segmentation.
	StopWords map[string]bool

	// CategoryPhrases are core product-category phrases; a phrase shared
	// by both names marks them as the same category.
	CategoryPhrases []string

	// CategorySynonyms links different phrasings of one category.
	CategorySynonyms []SynonymPair

	// CategoryConflicts penalise incompatible category pairs.
	CategoryConflicts []CategoryConflict

	// VariantMarkers flag dietary or recipe variants ("reduced sugar").
	VariantMarkers []string

	// FlavorMarkers distinguish flavour variants of one product line.
	FlavorMarkers []string

	// PriceBands hold expected price ranges per category keyword.
	PriceBands []PriceBand

	// PromoMarkers are regexp sources that detect promotional wording.
	PromoMarkers []string

	// RemovePhrases are regexp sources stripped when building the
	// exact-match key; a superset of PromoMarkers.
	RemovePhrases []string

	// Retailers is the probe order for price extraction; the first
	// PriorityRetailers entries are the preferred set.
	Retailers         []string
	PriorityRetailers int

	// ScanAllRetailers disables the stop-at-first-hit shortcut and
	// collects a price for every configured retailer.
	ScanAllRetailers bool

	// PriceWindow is the maximum number of characters allowed between a
	// retailer name and its price on a scraped page.
	PriceWindow int

	// MinTokenLength guards substring token matching in the scorer;
	// shorter tokens must match exactly.
	MinTokenLength int
}

// DefaultConfig assembles the full UK grocery lexicon.
func DefaultConfig() *Config {
	return &Config{
		Brands:            BuildBrandLexicon(),
		BrandAliasGroups:  BuildBrandAliasGroups(),
		StopWords:         BuildStopWords(),
		CategoryPhrases:   BuildCategoryPhrases(),
		CategorySynonyms:  BuildCategorySynonyms(),
		CategoryConflicts: BuildCategoryConflicts(),
		VariantMarkers:    BuildVariantMarkers(),
		FlavorMarkers:     BuildFlavorMarkers(),
		PriceBands:        BuildPriceBands(),
		PromoMarkers:      BuildPromoMarkers(),
		RemovePhrases:     BuildRemovePhrases(),
		Retailers:         BuildRetailers(),
		PriorityRetailers: 4,
		PriceWindow:       90,
		MinTokenLength:    3,
	}
}
