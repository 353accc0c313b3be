package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTermsMultipack(t *testing.T) {
	m := NewDefault()

	terms := m.SearchTerms("Heinz Baked Beanz 6 x 415g")
	require.Len(t, terms, 2)
	assert.Equal(t, "Heinz Baked Beans Family Pack", terms[0])
	assert.Equal(t, "Heinz Family Pack", terms[1])
}

func TestSearchTermsSingle(t *testing.T) {
	m := NewDefault()

	terms := m.SearchTerms("Heinz Baked Beanz 415g")
	require.Len(t, terms, 2)
	assert.Equal(t, "Heinz Baked Beanz 415g", terms[0])
	assert.Equal(t, "Baked Beanz 415g", terms[1])
}

func TestSearchTermsCap(t *testing.T) {
	m := NewDefault()

	inputs := []string{
		"Heinz Baked Beanz 6 x 415g",
		"Branston Baked Beans Reduced Salt and Sugar 4 x 410g",
		"Eggs 6 Pack",
		"Semi Skimmed Milk 2.272l",
		"Al'Fez Moroccan Houmous 180g",
	}
	for _, in := range inputs {
		terms := m.SearchTerms(in)
		assert.LessOrEqual(t, len(terms), maxSearchTerms, "terms for %q: %v", in, terms)
		assert.NotEmpty(t, terms, "terms for %q", in)
	}
}

func TestSearchTermsDeduplicated(t *testing.T) {
	m := NewDefault()

	for _, in := range []string{"Heinz Baked Beanz 415g", "Eggs 6 Pack"} {
		terms := m.SearchTerms(in)
		seen := make(map[string]bool)
		for _, term := range terms {
			assert.False(t, seen[term], "duplicate term %q for %q", term, in)
			seen[term] = true
		}
	}
}

func TestSearchTermsStripsPriceNoise(t *testing.T) {
	m := NewDefault()

	terms := m.SearchTerms("Heinz Baked Beanz 415g £1.40 17.5p per 100g")
	require.NotEmpty(t, terms)
	for _, term := range terms {
		assert.NotContains(t, term, "£")
		assert.NotContains(t, term, "per 100g")
	}
}

func TestSearchTermsEmpty(t *testing.T) {
	m := NewDefault()

	assert.Empty(t, m.SearchTerms(""))
	assert.Empty(t, m.SearchTerms("   "))
}
