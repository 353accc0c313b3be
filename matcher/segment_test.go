package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitBrand(t *testing.T) {
	m := NewDefault()

	tests := []struct {
		name        string
		input       string
		wantBrand   string
		wantProduct string
	}{
		{
			name:        "lexicon brand at start",
			input:       "Heinz Baked Beanz 415g",
			wantBrand:   "Heinz",
			wantProduct: "Baked Beanz 415g",
		},
		{
			name:        "multi-word brand wins over prefix",
			input:       "Dr Oetker Pizza Pepperoni 320g",
			wantBrand:   "Dr Oetker",
			wantProduct: "Pizza Pepperoni 320g",
		},
		{
			name:        "own brand",
			input:       "Tesco Baked Beans In Tomato Sauce 420g",
			wantBrand:   "Tesco",
			wantProduct: "Baked Beans In Tomato Sauce 420g",
		},
		{
			name:        "brand mid-name drops leading noise",
			input:       "415g Heinz Baked Beanz",
			wantBrand:   "Heinz",
			wantProduct: "Baked Beanz",
		},
		{
			name:        "stop word never becomes a brand",
			input:       "Baked Beans 415g",
			wantBrand:   "",
			wantProduct: "Baked Beans 415g",
		},
		{
			name:        "quantity token never becomes a brand",
			input:       "415g Beans",
			wantBrand:   "",
			wantProduct: "415g Beans",
		},
		{
			name:        "unknown first word taken as brand guess",
			input:       "Bloggs Beans 415g",
			wantBrand:   "Bloggs",
			wantProduct: "Beans 415g",
		},
		{
			name:        "single word has no brand",
			input:       "Beans",
			wantBrand:   "",
			wantProduct: "Beans",
		},
		{
			name:        "empty input",
			input:       "",
			wantBrand:   "",
			wantProduct: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			brand, product := m.SplitBrand(tt.input)
			assert.Equal(t, tt.wantBrand, brand)
			assert.Equal(t, tt.wantProduct, product)
		})
	}
}

// Every lexicon brand must survive a segmentation round trip.
func TestSplitBrandRoundTrip(t *testing.T) {
	m := NewDefault()

	for _, brand := range m.Config().Brands {
		name := brand + " Widget 100g"
		gotBrand, gotProduct := m.SplitBrand(name)
		assert.Equal(t, brand, gotBrand, "brand for %q", name)
		assert.Equal(t, "Widget 100g", gotProduct, "product for %q", name)
	}
}

func TestSplitBrandProductNeverEmpty(t *testing.T) {
	m := NewDefault()

	brand, product := m.SplitBrand("Heinz")
	assert.Equal(t, "Heinz", brand)
	assert.Equal(t, "Heinz", product)
}

func TestAreBrandsSimilar(t *testing.T) {
	m := NewDefault()

	tests := []struct {
		a, b string
		want bool
	}{
		{"Heinz", "Heinz", true},
		{"Heinz", "heinz", true},
		{"Al'Fez", "Alfez", true},
		{"Al'Fez", "Al-Fez", true},
		{"Al'Fez", "Al Fez", true},
		{"Dr. Oetker", "Oetker", true},
		{"Dr. Oetker", "Dr Oetker", true},
		{"Sainsbury's", "Sainsburys", true},
		{"Coca-Cola", "Coca Cola", true},
		{"Heinz", "Branston", false},
		{"Tesco", "ASDA", false},
		{"Heinz", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.AreBrandsSimilar(tt.a, tt.b), "%q vs %q", tt.a, tt.b)
		assert.Equal(t, tt.want, m.AreBrandsSimilar(tt.b, tt.a), "symmetry %q vs %q", tt.b, tt.a)
	}
}

func TestBrandSimilarity(t *testing.T) {
	m := NewDefault()

	assert.Equal(t, 1.0, m.BrandSimilarity("Heinz", "HEINZ"))
	assert.Equal(t, 1.0, m.BrandSimilarity("Al'Fez", "Alfez"))

	// Near-misses stay above the same-brand tier cutoff.
	assert.GreaterOrEqual(t, m.BrandSimilarity("Morrisons", "Morrison"), 0.8)

	// Unrelated brands stay well below it.
	assert.Less(t, m.BrandSimilarity("Heinz", "Branston"), 0.8)
	assert.Equal(t, 0.0, m.BrandSimilarity("Heinz", ""))
}
