package index

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"grocerscan/matcher"
)

// Without a MEILI_URL the index is nil and every method must be a no-op
// rather than a crash; the pipeline treats indexing as optional.
func TestNilIndexIsSafe(t *testing.T) {
	ix := New("", "", "grocery_listings")
	assert.Nil(t, ix)

	assert.NoError(t, ix.Setup())
	assert.NoError(t, ix.IndexResult("heinz beanz", "Heinz", &matcher.MatchResult{Name: "Heinz Baked Beanz 415g"}))

	_, err := ix.Search("beans", 10)
	assert.Error(t, err)
}

func TestNewConfigured(t *testing.T) {
	ix := New("http://127.0.0.1:7700", "key", "grocery_listings")
	assert.NotNil(t, ix)
	assert.Equal(t, "grocery_listings", ix.name)
}
