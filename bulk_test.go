package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadQueries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	content := "product,notes\nHeinz Baked Beanz 415g,staple\n\nBranston Baked Beans 4 x 410g,\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	queries, err := readQueries(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heinz Baked Beanz 415g", "Branston Baked Beans 4 x 410g"}, queries)
}

func TestReadQueriesNoHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte("Heinz Baked Beanz 415g\nEggs 6 Pack\n"), 0o644))

	queries, err := readQueries(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Heinz Baked Beanz 415g", "Eggs 6 Pack"}, queries)
}

func TestReadQueriesMissingFile(t *testing.T) {
	_, err := readQueries("/does/not/exist.csv")
	assert.Error(t, err)
}

func TestIsHeader(t *testing.T) {
	assert.True(t, isHeader("Product"))
	assert.True(t, isHeader("product name"))
	assert.True(t, isHeader("Query"))
	assert.False(t, isHeader("Heinz Baked Beanz 415g"))
}
