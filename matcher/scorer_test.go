package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScoreIdenticalNames(t *testing.T) {
	m := NewDefault()

	names := []string{
		"Heinz Baked Beanz 6 x 415g",
		"Branston Baked Beans 4 x 410g",
		"Al'Fez Moroccan Houmous 180g",
	}
	for _, name := range names {
		assert.Equal(t, 1.0, m.Score(name, name), "score of %q against itself", name)
	}
}

func TestScoreBrandGate(t *testing.T) {
	m := NewDefault()

	// Recognised but dissimilar brands zero out everything else, even an
	// otherwise identical product.
	assert.Equal(t, 0.0, m.Score("Heinz Baked Beanz 415g", "Branston Baked Beans 415g"))
	assert.Equal(t, 0.0, m.Score("Tesco Baked Beans 420g", "ASDA Baked Beans 420g"))

	bd := m.ScoreBreakdown("Heinz Baked Beanz 415g", "Branston Baked Beans 415g")
	require.NotEmpty(t, bd.Contributions)
	assert.Equal(t, "brand_gate", bd.Contributions[0].Rule)
	assert.NotEmpty(t, bd.Issues)
}

func TestScoreBrandGateIgnoresGuessedBrands(t *testing.T) {
	m := NewDefault()

	// "Bloggs" is a first-word guess, not a lexicon hit; it must not
	// block the match the way a recognised brand clash would.
	score := m.Score("Bloggs Beans 415g", "Bloggs Beans 415g")
	assert.Greater(t, score, 0.5)
}

func TestScoreAliasBrandsNotGated(t *testing.T) {
	m := NewDefault()

	score := m.Score("Al'Fez Moroccan Houmous 180g", "Alfez Moroccan Houmous 180g")
	assert.Equal(t, 1.0, score)
}

func TestScoreOneSidedBrandDiscount(t *testing.T) {
	m := NewDefault()

	branded := "Heinz Baked Beanz 415g"
	unbranded := "Baked Beanz 415g"

	bd := m.ScoreBreakdown(branded, unbranded)
	assert.InDelta(t, 0.72, bd.Score, 1e-9)

	var discounted bool
	for _, c := range bd.Contributions {
		if c.Rule == "brand_uncertainty" {
			discounted = true
		}
	}
	assert.True(t, discounted, "expected brand_uncertainty contribution, got %+v", bd.Contributions)

	// Symmetric in the discount.
	assert.InDelta(t, bd.Score, m.Score(unbranded, branded), 1e-9)
}

func TestScoreVariantPenalty(t *testing.T) {
	m := NewDefault()

	regular := "Bloggs Beans 415g"
	variant := "Bloggs Beans Reduced Salt 415g"

	same := m.Score(regular, regular)
	mixed := m.Score(regular, variant)
	assert.Less(t, mixed, same)

	bd := m.ScoreBreakdown(regular, variant)
	var variantDelta float64
	for _, c := range bd.Contributions {
		if c.Rule == "variant_consistency" {
			variantDelta = c.Delta
		}
	}
	assert.Equal(t, -0.6, variantDelta)

	// Two names sharing the variant marker are rewarded, not penalised.
	bd = m.ScoreBreakdown(variant, variant)
	for _, c := range bd.Contributions {
		if c.Rule == "variant_consistency" {
			assert.Equal(t, 0.3, c.Delta)
		}
	}
}

func TestScoreCategoryConflictDominates(t *testing.T) {
	m := NewDefault()

	// Same brand, same rough wording, but soup is not beans.
	score := m.Score("Heinz Cream of Tomato Soup 400g", "Heinz Baked Beans Family Pack")
	assert.Less(t, score, 0.5)

	score = m.Score("Heinz Curried Chickpeas 400g", "Heinz Baked Beanz 415g")
	assert.Less(t, score, 0.5)
}

func TestScoreMultipackPenalty(t *testing.T) {
	m := NewDefault()

	single := "Bloggs Beans 415g"
	multi := "Bloggs Beans 6 x 415g"

	mixed := m.Score(single, multi)
	both := m.Score(multi, multi)
	assert.Less(t, mixed, both)
}

func TestScoreQuantityRule(t *testing.T) {
	m := NewDefault()

	bd := m.ScoreBreakdown("Heinz Beanz 415g", "Heinz Beanz 400g")
	var delta float64
	for _, c := range bd.Contributions {
		if c.Rule == "quantity_similarity" {
			delta = c.Delta
		}
	}
	// 415 vs 400 is within 10%.
	assert.Equal(t, 0.3, delta)

	bd = m.ScoreBreakdown("Heinz Beanz 415g", "Heinz Beanz 200g")
	for _, c := range bd.Contributions {
		if c.Rule == "quantity_similarity" {
			delta = c.Delta
		}
	}
	assert.Equal(t, -0.2, delta)

	// Mixed unit scales still compare: 0.415kg vs 415g.
	bd = m.ScoreBreakdown("Heinz Beanz 0.415kg", "Heinz Beanz 415g")
	for _, c := range bd.Contributions {
		if c.Rule == "quantity_similarity" {
			delta = c.Delta
		}
	}
	assert.Equal(t, 0.3, delta)
}

func TestScoreCategoryAlias(t *testing.T) {
	m := NewDefault()

	bd := m.ScoreBreakdown("Heinz Baked Beanz 415g", "Heinz Baked Beans 415g")
	rules := make(map[string]float64)
	for _, c := range bd.Contributions {
		rules[c.Rule] = c.Delta
	}
	assert.Equal(t, 0.2, rules["category_alias"])
}

func TestScoreClampedToUnitInterval(t *testing.T) {
	m := NewDefault()

	pairs := [][2]string{
		{"Heinz Baked Beanz 6 x 415g", "Heinz Baked Beanz 6 x 415g"},
		{"Heinz Cream of Tomato Soup 400g", "Heinz Baked Beans Family Pack"},
		{"Heinz Baked Beanz 415g", "Branston Baked Beans 415g"},
		{"Eggs 6 Pack", "Semi Skimmed Milk 2.272l"},
	}
	for _, p := range pairs {
		s := m.Score(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0, "%q vs %q", p[0], p[1])
		assert.LessOrEqual(t, s, 1.0, "%q vs %q", p[0], p[1])
	}
}
