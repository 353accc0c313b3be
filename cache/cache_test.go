package cache

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSetAndGet(t *testing.T) {
	s := openTestStore(t)

	type result struct {
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	}
	want := result{Name: "Heinz Baked Beanz 415g", Price: 1.40}
	require.NoError(t, s.Set(Key("search", "heinz beanz"), want, time.Minute))

	var got result
	found, err := s.Get(Key("search", "heinz beanz"), &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, want, got)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	var v string
	found, err := s.Get(Key("nothing"), &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestExpiry(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", "value", -time.Second))

	var v string
	found, err := s.Get("k", &v)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestOverwrite(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("k", "first", time.Minute))
	require.NoError(t, s.Set("k", "second", time.Minute))

	var v string
	found, err := s.Get("k", &v)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "second", v)
}

func TestPurge(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.Set("stale", "x", -time.Second))
	require.NoError(t, s.Set("fresh", "y", time.Minute))

	dropped, err := s.Purge()
	require.NoError(t, err)
	assert.Equal(t, int64(1), dropped)

	var v string
	found, err := s.Get("fresh", &v)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestKeyStable(t *testing.T) {
	assert.Equal(t, Key("a", "b"), Key("a", "b"))
	assert.NotEqual(t, Key("a", "b"), Key("a", "c"))
	assert.NotEqual(t, Key("ab"), Key("a", "b"))
}
