package matcher

import (
	"fmt"
	"math"
	"strings"
)

// RuleContribution records one scoring rule's raw delta before any
// brand-uncertainty scaling.
type RuleContribution struct {
	Rule  string  `json:"rule"`
	Delta float64 `json:"delta"`
}

// Breakdown is a similarity score with its per-rule contributions, for
// debugging and the scoring API endpoint.
type Breakdown struct {
	Score         float64            `json:"score"`
	Contributions []RuleContribution `json:"contributions"`
	Issues        []string           `json:"issues,omitempty"`
}

// scorePair carries everything the rules need, computed once per pair.
type scorePair struct {
	brandA, brandB     string
	knownA, knownB     bool
	productA, productB string
	cleanA, cleanB     string
	lowerA, lowerB     string
	tokensA, tokensB   []string
	qtyA, qtyB         QuantityInfo
	multiA, multiB     bool
}

// scoreRule is one named step of the similarity calculation. Rules run in
// table order; apply reports the delta and whether the rule fired.
type scoreRule struct {
	name  string
	apply func(m *Matcher, p *scorePair) (float64, bool)
}

// Score returns the similarity of two product names in [0, 1].
func (m *Matcher) Score(a, b string) float64 {
	return m.ScoreBreakdown(a, b).Score
}

// ScoreBreakdown scores two product names and reports every rule that
// fired. The brand gate is absolute: recognised, dissimilar brands yield
// zero regardless of any other signal. When exactly one side has a
// recognised brand the accumulated rule total is scaled by 0.3.
func (m *Matcher) ScoreBreakdown(a, b string) Breakdown {
	var bd Breakdown

	p := &scorePair{lowerA: strings.ToLower(a), lowerB: strings.ToLower(b)}
	p.brandA, p.productA, p.knownA = m.splitBrand(a)
	p.brandB, p.productB, p.knownB = m.splitBrand(b)
	p.cleanA = cleanForComparison(p.productA)
	p.cleanB = cleanForComparison(p.productB)
	p.tokensA = strings.Fields(p.cleanA)
	p.tokensB = strings.Fields(p.cleanB)
	p.qtyA = m.ExtractQuantity(a)
	p.qtyB = m.ExtractQuantity(b)
	p.multiA = m.IsMultipack(a)
	p.multiB = m.IsMultipack(b)

	// Hard brand gate; only lexicon-recognised brands can block a match.
	if p.knownA && p.knownB && !m.AreBrandsSimilar(p.brandA, p.brandB) {
		bd.Contributions = append(bd.Contributions, RuleContribution{Rule: "brand_gate", Delta: 0})
		bd.Issues = append(bd.Issues, fmt.Sprintf("different brands: %s vs %s", p.brandA, p.brandB))
		return bd
	}

	oneSided := p.knownA != p.knownB

	var total float64
	for _, rule := range scoreRules {
		delta, fired := rule.apply(m, p)
		if !fired {
			continue
		}
		total += delta
		bd.Contributions = append(bd.Contributions, RuleContribution{Rule: rule.name, Delta: delta})
	}

	if oneSided {
		bd.Contributions = append(bd.Contributions, RuleContribution{Rule: "brand_uncertainty", Delta: total*0.3 - total})
		bd.Issues = append(bd.Issues, "brand recognised on one side only")
		total *= 0.3
	}

	bd.Score = math.Max(0, math.Min(1, total))
	return bd
}

// scoreRules is the ordered similarity rule table. Order matters only for
// breakdown readability; deltas are independent and summed.
var scoreRules = []scoreRule{
	{"token_overlap", (*Matcher).tokenOverlapRule},
	{"substring_bonus", (*Matcher).substringRule},
	{"family_pack", (*Matcher).familyPackRule},
	{"multipack_both", (*Matcher).multipackBothRule},
	{"category_alias", (*Matcher).categoryAliasRule},
	{"same_category", (*Matcher).sameCategoryRule},
	{"variant_consistency", (*Matcher).variantRule},
	{"category_conflict", (*Matcher).categoryConflictRule},
	{"multipack_mismatch", (*Matcher).multipackMismatchRule},
	{"brand_match", (*Matcher).brandMatchRule},
	{"quantity_similarity", (*Matcher).quantityRule},
}

// tokenOverlapRule is Jaccard similarity over product tokens, with tokens
// counted as shared when one contains the other. Substring containment
// only applies to tokens at least MinTokenLength long; shorter tokens must
// match exactly, so "al" never absorbs "alfez".
func (m *Matcher) tokenOverlapRule(p *scorePair) (float64, bool) {
	if len(p.tokensA) == 0 || len(p.tokensB) == 0 {
		return 0, false
	}
	setA := toSet(p.tokensA)
	setB := toSet(p.tokensB)

	shared := make(map[string]bool)
	for ta := range setA {
		for tb := range setB {
			if ta == tb {
				shared[ta] = true
				continue
			}
			if len(ta) >= m.cfg.MinTokenLength && len(tb) >= m.cfg.MinTokenLength &&
				(strings.Contains(ta, tb) || strings.Contains(tb, ta)) {
				shared[ta] = true
				shared[tb] = true
			}
		}
	}

	union := make(map[string]bool, len(setA)+len(setB))
	for t := range setA {
		union[t] = true
	}
	for t := range setB {
		union[t] = true
	}
	return float64(len(shared)) / float64(len(union)), true
}

func (m *Matcher) substringRule(p *scorePair) (float64, bool) {
	if p.cleanA == "" || p.cleanB == "" {
		return 0, false
	}
	if strings.Contains(p.cleanA, p.cleanB) || strings.Contains(p.cleanB, p.cleanA) {
		return 0.2, true
	}
	return 0, false
}

// familyPackRule rewards explicit family-pack wording: both names carry it,
// or one does while at least one side is a multipack.
func (m *Matcher) familyPackRule(p *scorePair) (float64, bool) {
	fa := familyPackPattern.MatchString(p.lowerA)
	fb := familyPackPattern.MatchString(p.lowerB)
	switch {
	case fa && fb:
		return 0.5, true
	case (fa != fb) && (p.multiA || p.multiB):
		return 0.3, true
	}
	return 0, false
}

func (m *Matcher) multipackBothRule(p *scorePair) (float64, bool) {
	if p.multiA && p.multiB {
		return 0.4, true
	}
	return 0, false
}

// categoryAliasRule rewards names linked through a category synonym pair,
// such as "baked beans" on one side and "beanz" on the other.
func (m *Matcher) categoryAliasRule(p *scorePair) (float64, bool) {
	for _, syn := range m.cfg.CategorySynonyms {
		if (containsPhrase(p.lowerA, syn.A) && containsPhrase(p.lowerB, syn.B)) ||
			(containsPhrase(p.lowerA, syn.B) && containsPhrase(p.lowerB, syn.A)) {
			return 0.2, true
		}
	}
	return 0, false
}

func (m *Matcher) sameCategoryRule(p *scorePair) (float64, bool) {
	for _, phrase := range m.cfg.CategoryPhrases {
		if containsPhrase(p.lowerA, phrase) && containsPhrase(p.lowerB, phrase) {
			return 0.6, true
		}
	}
	return 0, false
}

// variantRule enforces dietary-variant consistency: both plain or sharing
// a marker is rewarded, a marker on one side only is penalised harder than
// most bonuses can recover.
func (m *Matcher) variantRule(p *scorePair) (float64, bool) {
	varsA := m.variantMarkers(p.lowerA)
	varsB := m.variantMarkers(p.lowerB)
	if len(varsA) == 0 && len(varsB) == 0 {
		return 0.3, true
	}
	for v := range varsA {
		if varsB[v] {
			return 0.3, true
		}
	}
	return -0.6, true
}

func (m *Matcher) variantMarkers(lower string) map[string]bool {
	if m.variantPattern == nil {
		return nil
	}
	found := make(map[string]bool)
	for _, match := range m.variantPattern.FindAllString(lower, -1) {
		found[strings.ToLower(match)] = true
	}
	return found
}

func (m *Matcher) categoryConflictRule(p *scorePair) (float64, bool) {
	var total float64
	for _, c := range m.cfg.CategoryConflicts {
		if (containsAnyPhrase(p.lowerA, c.A) && containsAnyPhrase(p.lowerB, c.B)) ||
			(containsAnyPhrase(p.lowerA, c.B) && containsAnyPhrase(p.lowerB, c.A)) {
			total += c.Penalty
		}
	}
	return total, total != 0
}

func (m *Matcher) multipackMismatchRule(p *scorePair) (float64, bool) {
	if p.multiA != p.multiB {
		return -0.5, true
	}
	return 0, false
}

func (m *Matcher) brandMatchRule(p *scorePair) (float64, bool) {
	if p.knownA && p.knownB && m.AreBrandsSimilar(p.brandA, p.brandB) {
		return 0.5, true
	}
	return 0, false
}

// quantityRule compares pack sizes and per-item quantities. Differing pack
// sizes is a hard mismatch; with packs equal, unit quantities within 10%
// earn the full bonus, within 20% a nominal one, and anything further
// apart a penalty. Quantities in non-convertible units are left neutral.
func (m *Matcher) quantityRule(p *scorePair) (float64, bool) {
	if p.qtyA.PackSize != p.qtyB.PackSize {
		return -0.5, true
	}
	if p.qtyA.UnitQuantity == nil || p.qtyB.UnitQuantity == nil {
		return 0, false
	}

	va, okA := p.qtyA.BaseQuantity()
	vb, okB := p.qtyB.BaseQuantity()
	if !okA || !okB {
		if p.qtyA.Unit != p.qtyB.Unit {
			return 0, false
		}
		va, vb = *p.qtyA.UnitQuantity, *p.qtyB.UnitQuantity
	}

	larger := math.Max(va, vb)
	if larger == 0 {
		return 0, false
	}
	switch diff := math.Abs(va-vb) / larger; {
	case diff <= 0.10:
		return 0.3, true
	case diff <= 0.20:
		return 0.1, true
	default:
		return -0.2, true
	}
}

func toSet(tokens []string) map[string]bool {
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// containsPhrase matches phrase in s on word boundaries.
func containsPhrase(s, phrase string) bool {
	return indexWord(s, strings.ToLower(phrase)) >= 0
}

func containsAnyPhrase(s string, phrases []string) bool {
	for _, p := range phrases {
		if containsPhrase(s, p) {
			return true
		}
	}
	return false
}
