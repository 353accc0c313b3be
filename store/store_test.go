package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grocerscan/matcher"
)

// Integration tests run only against a real database, e.g.
// TEST_DATABASE_URL=postgres://localhost/grocerscan_test?sslmode=disable
func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	repo, err := Open(dsn)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = repo.db.Exec(`DELETE FROM lookups WHERE query LIKE 'test:%'`)
		repo.Close()
	})
	return repo
}

func TestSaveAndHistory(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	price := 1.40
	res := &matcher.MatchResult{
		Name:       "Heinz Baked Beanz 415g",
		Retailer:   "Tesco",
		Price:      &price,
		Confidence: 1.0,
		MatchType:  matcher.MatchExact,
	}
	require.NoError(t, repo.SaveResult(ctx, "test:heinz beanz", res))

	entries, err := repo.History(ctx, "test:heinz beanz", 10)
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "Heinz Baked Beanz 415g", entries[0].Name)
	assert.Equal(t, "Tesco", entries[0].Retailer)
	require.NotNil(t, entries[0].Price)
	assert.InDelta(t, 1.40, *entries[0].Price, 1e-9)
	assert.Equal(t, "exact", entries[0].MatchType)
}

func TestStaleQueries(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	res := &matcher.MatchResult{Name: "X", Confidence: 0.8, MatchType: matcher.MatchFuzzy}
	require.NoError(t, repo.SaveResult(ctx, "test:fresh", res))

	// A zero max age marks everything stale, including the row just written.
	stale, err := repo.StaleQueries(ctx, 0, 100)
	require.NoError(t, err)
	assert.Contains(t, stale, "test:fresh")

	stale, err = repo.StaleQueries(ctx, 24*time.Hour, 100)
	require.NoError(t, err)
	assert.NotContains(t, stale, "test:fresh")
}

func TestTopQueries(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	res := &matcher.MatchResult{Name: "X", Confidence: 0.8, MatchType: matcher.MatchFuzzy}
	require.NoError(t, repo.SaveResult(ctx, "test:top", res))
	require.NoError(t, repo.SaveResult(ctx, "test:top", res))

	stats, err := repo.TopQueries(ctx, 100)
	require.NoError(t, err)

	var found bool
	for _, s := range stats {
		if s.Query == "test:top" {
			found = true
			assert.GreaterOrEqual(t, s.Lookups, 2)
		}
	}
	assert.True(t, found)
}
