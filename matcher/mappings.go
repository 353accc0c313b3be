package matcher

// Lookup tables for UK grocery listings, compiled from scraped Trolley.co.uk
// search pages across the seven tracked retailers.

// BuildBrandLexicon returns the known grocery brands with canonical casing.
// Order here does not matter; New sorts the lexicon longest-first before
// segmentation so "Dr Oetker" wins over "Oetker".
func BuildBrandLexicon() []string {
	return []string{
		// Ambient grocery staples
		"Heinz",
		"Branston",
		"HP",
		"Hellmann's",
		"Colman's",
		"Daddies",
		"Lea & Perrins",
		"Tabasco",
		"Schwartz",
		"Oxo",
		"Bisto",
		"Baxters",
		"Batchelors",
		"Ambrosia",
		"Fray Bentos",
		"Princes",
		"John West",
		"Napolina",
		"Green Giant",
		"Old El Paso",
		"Uncle Ben's",
		"Ben's Original",
		"Tilda",
		"Dolmio",
		"Loyd Grossman",
		"Sharwood's",
		"Blue Dragon",
		"Amoy",
		"Kikkoman",
		"Koka",
		"Ko-Lee",
		"Al'Fez",
		"Alfez",
		"Al-Fez",
		"Al Fez",
		"Wagamama",
		"Nando's",
		// Breakfast and baking
		"Kelloggs",
		"Kellogg's",
		"Weetabix",
		"Shreddies",
		"Quaker",
		"Jordans",
		"Alpen",
		"Dorset Cereals",
		"Dr. Oetker",
		"Dr Oetker",
		"Oetker",
		"Betty Crocker",
		"McDougalls",
		"Great Scot",
		// Bread and spreads
		"Warburtons",
		"Hovis",
		"Kingsmill",
		"Lurpak",
		"Anchor",
		"Flora",
		"Clover",
		"Marmite",
		"Nutella",
		"Bonne Maman",
		"Hartley's",
		// Dairy and chilled
		"Cathedral City",
		"Philadelphia",
		"Dairylea",
		"Babybel",
		"Muller",
		"Activia",
		"Alpro",
		"Yeo Valley",
		"Cravendale",
		"Arla",
		"Charlie Bigham's",
		"Ainsley Harriott",
		// Drinks
		"Coca-Cola",
		"Coca Cola",
		"Pepsi",
		"Fanta",
		"Sprite",
		"7UP",
		"Dr Pepper",
		"Irn-Bru",
		"Robinsons",
		"Ribena",
		"Vimto",
		"Innocent",
		"Tropicana",
		"Highland Spring",
		"Evian",
		"Buxton",
		"Nescafe",
		"Kenco",
		"Douwe Egberts",
		"PG Tips",
		"Yorkshire Tea",
		"Twinings",
		"Tetley",
		// Snacks and confectionery
		"Walkers",
		"Pringles",
		"Doritos",
		"Kettle",
		"McCoy's",
		"Hula Hoops",
		"McVitie's",
		"Cadbury",
		"Nestle",
		"Mars",
		"Galaxy",
		"Haribo",
		"Tunnock's",
		"Mr Kipling",
		"Borders",
		// Frozen
		"Birds Eye",
		"Aunt Bessie's",
		"McCain",
		"Young's",
		"Quorn",
		"Linda McCartney's",
		"Goodfella's",
		"Chicago Town",
		"Ben & Jerry's",
		"Haagen-Dazs",
		"Magnum",
		"Walls",
		// Retailer own brands
		"Tesco Finest",
		"Tesco",
		"Sainsbury's",
		"Sainsburys",
		"Sainsbury",
		"ASDA",
		"Morrisons",
		"Ocado",
		"Waitrose",
		"Aldi",
		"Lidl",
		"Co-op",
		"Coop",
		"Wilko",
		"M&S",
	}
}

// BuildBrandAliasGroups returns spelling variants that refer to the same
// brand. Membership in one group makes two brand strings interchangeable
// for scoring.
func BuildBrandAliasGroups() [][]string {
	return [][]string{
		{"Al'Fez", "Alfez", "Al-Fez", "Al Fez"},
		{"Dr. Oetker", "Dr Oetker", "Oetker"},
		{"Kelloggs", "Kellogg's"},
		{"Sainsbury's", "Sainsburys", "Sainsbury"},
		{"Coca-Cola", "Coca Cola"},
		{"Co-op", "Coop"},
		{"Uncle Ben's", "Ben's Original"},
	}
}

// BuildStopWords returns generic tokens that must not be treated as a
// brand when the lexicon has no match and segmentation falls back to the
// first word.
func BuildStopWords() map[string]bool {
	words := []string{
		// Product nouns
		"baked", "beans", "bean", "beanz", "soup", "pasta", "rice", "bread", "milk", "eggs",
		"cheese", "butter", "yogurt", "yoghurt", "chicken", "beef", "pork",
		"fish", "tuna", "salmon", "chocolate", "biscuits", "crisps",
		"cereal", "juice", "water", "tea", "coffee", "sauce", "ketchup",
		"mayonnaise", "noodles", "couscous", "chickpeas", "lentils",
		"tomatoes", "potatoes", "onions", "spaghetti",
		// Cuisine and style adjectives
		"italian", "indian", "chinese", "thai", "mexican", "moroccan",
		"mediterranean", "spanish", "greek", "french", "british",
		// Size and quality adjectives
		"large", "small", "medium", "big", "mini", "giant", "jumbo",
		"extra", "super", "premium", "finest", "classic", "original",
		"traditional", "fresh", "frozen", "organic", "free",
		// Packaging nouns
		"pack", "packet", "tin", "can", "jar", "bottle", "box", "bag",
		"tub", "pot", "carton", "tray", "multipack", "bundle",
		// Misc fillers
		"new", "the", "with", "and", "in", "of", "style", "range",
	}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// BuildCategoryPhrases returns the core category phrases. A phrase found
// in both names marks them as the same product category.
func BuildCategoryPhrases() []string {
	return []string{
		"baked beans",
		"beanz",
		"cream of tomato soup",
		"tomato soup",
		"chicken soup",
		"vegetable soup",
		"spaghetti hoops",
		"mushy peas",
		"kidney beans",
		"black beans",
		"chickpeas",
		"couscous",
		"corn flakes",
		"rice krispies",
		"instant noodles",
		"orange juice",
		"apple juice",
		"semi skimmed milk",
		"whole milk",
		"skimmed milk",
		"white bread",
		"wholemeal bread",
		"mature cheddar",
		"tomato ketchup",
		"brown sauce",
		"salad cream",
	}
}

// BuildCategorySynonyms links retailer-specific phrasings of a category,
// e.g. Heinz sells baked beans under the "Beanz" label.
func BuildCategorySynonyms() []SynonymPair {
	return []SynonymPair{
		{A: "baked beans", B: "beanz"},
		{A: "baked bean", B: "beanz"},
		{A: "spaghetti hoops", B: "spaghetti loops"},
		{A: "chickpeas", B: "chick peas"},
		{A: "couscous", B: "cous cous"},
	}
}

// BuildCategoryConflicts returns penalties for incompatible categories.
// Conflicts are independent; a name pair hitting several entries
// accumulates all of them.
func BuildCategoryConflicts() []CategoryConflict {
	bakedBeans := []string{"baked beans", "baked bean", "beanz"}
	return []CategoryConflict{
		{A: []string{"chilli black beans", "black beans"}, B: bakedBeans, Penalty: -0.5},
		{A: []string{"cream of tomato soup", "tomato soup"}, B: bakedBeans, Penalty: -0.8},
		{A: []string{"curried chickpeas", "curry chickpeas"}, B: bakedBeans, Penalty: -0.9},
		{A: []string{"chickpeas", "chick peas"}, B: bakedBeans, Penalty: -0.8},
		{A: []string{"cream of tomato soup", "tomato soup", "chicken soup"}, B: []string{"couscous", "cous cous"}, Penalty: -0.8},
	}
}

// BuildVariantMarkers returns dietary and recipe variant phrases. Matching
// is done on word boundaries, so "light" will not fire inside "delight".
func BuildVariantMarkers() []string {
	return []string{
		"reduced sugar",
		"reduced salt",
		"reduced fat",
		"no added sugar",
		"no added salt",
		"sugar free",
		"fat free",
		"low sugar",
		"low salt",
		"low fat",
		"light",
		"lighter",
		"zero",
		"diet",
		"organic",
		"gluten free",
		"dairy free",
		"vegan",
		"wholegrain",
		"wholemeal",
	}
}

// BuildFlavorMarkers returns flavour words that distinguish variants of a
// single product line.
func BuildFlavorMarkers() []string {
	return []string{
		"tomato", "chicken", "beef", "vegetable", "mushroom", "oxtail",
		"cream", "cheese", "garlic", "herb", "basil", "chilli", "curry",
		"tikka", "korma", "bbq", "barbecue", "smoky", "peri peri",
		"sweet chilli", "salt and vinegar", "cheese and onion",
		"prawn cocktail", "lemon", "lime", "orange", "strawberry",
		"raspberry", "blackcurrant", "apple", "mango", "tropical",
		"chocolate", "vanilla", "caramel", "toffee", "coffee", "mint",
		"hazelnut", "honey",
	}
}

// BuildPriceBands returns the expected shelf-price range per category.
// A matched price outside its band is flagged, never rejected.
func BuildPriceBands() []PriceBand {
	return []PriceBand{
		{Category: "baked beans", Min: 0.30, Max: 3.00},
		{Category: "beanz", Min: 0.30, Max: 3.00},
		{Category: "soup", Min: 0.50, Max: 3.00},
		{Category: "milk", Min: 0.50, Max: 2.50},
		{Category: "bread", Min: 0.80, Max: 3.00},
		{Category: "eggs", Min: 1.00, Max: 4.00},
		{Category: "cheese", Min: 1.50, Max: 8.00},
		{Category: "butter", Min: 1.00, Max: 5.00},
		{Category: "yogurt", Min: 0.50, Max: 4.00},
		{Category: "pasta", Min: 0.50, Max: 3.00},
		{Category: "rice", Min: 0.80, Max: 5.00},
		{Category: "cereal", Min: 1.50, Max: 6.00},
		{Category: "chicken", Min: 2.00, Max: 10.00},
		{Category: "beef", Min: 3.00, Max: 15.00},
		{Category: "fish", Min: 2.00, Max: 12.00},
		{Category: "vegetables", Min: 0.50, Max: 5.00},
		{Category: "fruit", Min: 0.80, Max: 6.00},
	}
}

// BuildPromoMarkers returns regexp sources that detect promotional wording
// in raw listing text. Quantity phrases like "6 x 415g" are deliberately
// not promotional, and bare "reduced" is excluded so variant names such as
// "Reduced Salt and Sugar" are not flagged.
func BuildPromoMarkers() []string {
	return []string{
		`\bclubcard\b`,
		`\bnectar\b`,
		`\bwas\b`,
		`\bnow\b`,
		`\boffer\b`,
		`\bdeal\b`,
		`\bspecial\b`,
		`\bsave\b`,
		`\bclearance\b`,
		`\bmultibuy\b`,
		`\brollback\b`,
		`\breduced to clear\b`,
		`\b\d+\s+for\s+£?\d+(?:\.\d+)?\b`,
	}
}

// BuildRemovePhrases returns regexp sources stripped when building the
// exact-match key. Superset of the promo markers plus neutral marketing
// filler that retailers append inconsistently.
func BuildRemovePhrases() []string {
	return append(BuildPromoMarkers(),
		`\bprice\b`,
		`\bonly\b`,
		`\bgreat value\b`,
		`\bnew recipe\b`,
		`\bimproved\b`,
	)
}

// BuildRetailers returns the probe order for price extraction. The first
// PriorityRetailers entries form the preferred set; the rest are only
// probed when no priority retailer is found (or ScanAllRetailers is set).
func BuildRetailers() []string {
	return []string{
		"Tesco",
		"Morrisons",
		"Ocado",
		"Sainsbury's",
		"ASDA",
		"Wilko",
		"Co-op",
	}
}
