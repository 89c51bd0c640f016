package engine

// Test Plan:
// 1. Lookup returns every file declaring the symbol, sorted
// 2. Exact matching only (keyword analyzer, no tokenization)
// 3. Unknown symbols return no paths
// 4. Close is idempotent for the lifecycle we use

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSymbolIndexLookup(t *testing.T) {
	t.Parallel()

	si, err := newSymbolIndex(map[string][]string{
		"b.go": {"Connect", "Close"},
		"a.go": {"Connect", "New"},
	})
	require.NoError(t, err)
	defer si.Close()

	paths, err := si.lookup("Connect")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go"}, paths)

	paths, err = si.lookup("New")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go"}, paths)
}

func TestSymbolIndexExactMatch(t *testing.T) {
	t.Parallel()

	si, err := newSymbolIndex(map[string][]string{
		"handlers.go": {"HandleRequest"},
	})
	require.NoError(t, err)
	defer si.Close()

	paths, err := si.lookup("Handle")
	require.NoError(t, err)
	assert.Empty(t, paths)

	paths, err = si.lookup("HandleRequest")
	require.NoError(t, err)
	assert.Equal(t, []string{"handlers.go"}, paths)
}

func TestSymbolIndexUnknown(t *testing.T) {
	t.Parallel()

	si, err := newSymbolIndex(map[string][]string{"a.go": {"Run"}})
	require.NoError(t, err)
	defer si.Close()

	paths, err := si.lookup("Walk")
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSymbolIndexEmpty(t *testing.T) {
	t.Parallel()

	si, err := newSymbolIndex(nil)
	require.NoError(t, err)
	defer si.Close()

	paths, err := si.lookup("anything")
	require.NoError(t, err)
	assert.Empty(t, paths)
}
