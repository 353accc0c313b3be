package matcher

import (
	"sort"
	"strings"
)

// SelectBest picks the best candidate for a query in three tiers: exact
// normalized-name matches first, then same-brand same-weight variants,
// then the highest fuzzy score above threshold. Within the first two
// tiers promotional listings are deprioritised behind regular ones; in
// the fuzzy tier promotional listings carry a 0.3 score penalty applied
// after clamping. A threshold of zero or below selects DefaultThreshold.
// Returns nil when nothing qualifies.
func (m *Matcher) SelectBest(query string, candidates []Listing, threshold float64) *MatchResult {
	if len(candidates) == 0 {
		return nil
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	queryName := m.NormalizeName(query)

	if res := m.selectExact(queryName, candidates); res != nil {
		return res
	}
	if res := m.selectSameBrandWeight(queryName, candidates); res != nil {
		return res
	}
	return m.selectFuzzy(queryName, candidates, threshold)
}

func (m *Matcher) selectExact(queryName string, candidates []Listing) *MatchResult {
	key := m.exactKey(queryName)
	if key == "" {
		return nil
	}
	var exact []Listing
	for _, c := range candidates {
		if m.exactKey(m.listingName(c)) == key {
			exact = append(exact, c)
		}
	}
	if len(exact) == 0 {
		return nil
	}
	sort.SliceStable(exact, func(i, j int) bool {
		return !m.IsPromotional(exact[i].RawText) && m.IsPromotional(exact[j].RawText)
	})
	return m.buildResult(exact[0], 1.0, MatchExact)
}

// selectSameBrandWeight matches a different variant of the same product
// line: brands at least 0.8 similar, identical total quantity, but a
// distinguishable flavour or description. Flavour differences are more
// trustworthy than free-text ones, so they score higher.
func (m *Matcher) selectSameBrandWeight(queryName string, candidates []Listing) *MatchResult {
	qBrand, qProduct := m.SplitBrand(queryName)
	if qBrand == "" {
		return nil
	}
	qTotal, qOK := m.ExtractQuantity(queryName).TotalQuantity()
	if !qOK {
		return nil
	}
	qFlavor := m.firstFlavor(queryName)
	qClean := cleanForComparison(qProduct)

	type scored struct {
		listing    Listing
		confidence float64
		promo      bool
	}
	var hits []scored
	for _, c := range candidates {
		name := m.listingName(c)
		cBrand, cProduct := m.SplitBrand(name)
		if cBrand == "" || m.BrandSimilarity(qBrand, cBrand) < 0.8 {
			continue
		}
		cTotal, ok := m.ExtractQuantity(name).TotalQuantity()
		if !ok || !nearlyEqual(qTotal, cTotal) {
			continue
		}
		cClean := cleanForComparison(cProduct)
		cFlavor := m.firstFlavor(name)
		switch {
		case qFlavor != "" && cFlavor != "" && qFlavor != cFlavor:
			hits = append(hits, scored{c, 0.85, m.IsPromotional(c.RawText)})
		case qClean != cClean:
			hits = append(hits, scored{c, 0.75, m.IsPromotional(c.RawText)})
		}
	}
	if len(hits) == 0 {
		return nil
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].promo != hits[j].promo {
			return !hits[i].promo
		}
		return hits[i].confidence > hits[j].confidence
	})
	return m.buildResult(hits[0].listing, hits[0].confidence, MatchSameBrandWeight)
}

// selectFuzzy keeps the highest-scoring candidate above threshold. Strong
// candidates can clamp to the same score, so an equal score only displaces
// the current best when the challenger's pack size matches the query's and
// the incumbent's does not.
func (m *Matcher) selectFuzzy(queryName string, candidates []Listing, threshold float64) *MatchResult {
	qPack := m.ExtractQuantity(queryName).PackSize
	var best *Listing
	bestScore := threshold
	bestPack := false
	for i := range candidates {
		name := m.listingName(candidates[i])
		score := m.Score(queryName, name)
		if m.IsPromotional(candidates[i].RawText) {
			score -= 0.3
		}
		packMatch := m.ExtractQuantity(name).PackSize == qPack
		if score > bestScore || (best != nil && score == bestScore && packMatch && !bestPack) {
			best = &candidates[i]
			bestScore = score
			bestPack = packMatch
		}
	}
	if best == nil {
		return nil
	}
	return m.buildResult(*best, bestScore, MatchFuzzy)
}

// firstFlavor returns the first flavour marker found in a name, or "".
func (m *Matcher) firstFlavor(name string) string {
	if m.flavorPattern == nil {
		return ""
	}
	return strings.ToLower(m.flavorPattern.FindString(strings.ToLower(name)))
}

// listingName resolves the normalized name of a listing, normalizing the
// raw text for listings built without one.
func (m *Matcher) listingName(l Listing) string {
	if l.Name != "" {
		return l.Name
	}
	return m.NormalizeName(l.RawText)
}

// buildResult assembles a MatchResult from a chosen listing: the first
// priority retailer with a price wins, unit price is parsed from its
// per-unit text and the combined weight is validated against the name.
func (m *Matcher) buildResult(l Listing, confidence float64, matchType MatchType) *MatchResult {
	name := m.listingName(l)
	res := &MatchResult{
		Name:       name,
		Confidence: confidence,
		MatchType:  matchType,
		URL:        l.URL,
	}

	for _, retailer := range m.cfg.Retailers {
		rp, ok := l.Prices[retailer]
		if !ok {
			continue
		}
		price := rp.Price
		res.Retailer = retailer
		res.Price = &price
		res.UnitPrice = ParseUnitPrice(rp.PricePerUnit)
		break
	}

	if total, ok := m.ExtractQuantity(name).RawTotal(); ok {
		res.Weight = &total
	}
	res.ValidationIssues = m.ValidatePrice(name, res.Price, res.UnitPrice, res.Weight)
	return res
}

func nearlyEqual(a, b float64) bool {
	diff := a - b
	return diff < 1e-9 && diff > -1e-9
}
