package exec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuhongbo/grapheme/exec"
	"github.com/fuhongbo/grapheme/expr"
	"github.com/fuhongbo/grapheme/plan"
)

func mustParse(t *testing.T, source string) *expr.Expression {
	t.Helper()
	ex, err := expr.ParseExpression(source, plan.DefaultOptions())
	require.NoError(t, err)
	return ex
}

func TestCache_putAndGet(t *testing.T) {
	c, err := exec.NewCache(8)
	require.NoError(t, err)

	ex := mustParse(t, "x + 1")
	_, ok := c.Get(ex.Root)
	assert.False(t, ok)

	require.NoError(t, c.Put(ex))

	got, ok := c.Get(ex.Root)
	require.True(t, ok)
	assert.Same(t, ex, got)
}

func TestCache_evictsOldestBeyondCapacity(t *testing.T) {
	c, err := exec.NewCache(2)
	require.NoError(t, err)

	first := mustParse(t, "a + 1")
	second := mustParse(t, "b + 2")
	third := mustParse(t, "c + 3")

	require.NoError(t, c.Put(first))
	require.NoError(t, c.Put(second))
	require.NoError(t, c.Put(third))

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(first.Root)
	assert.False(t, ok, "oldest entry should have been evicted")

	_, ok = c.Get(third.Root)
	assert.True(t, ok)
}

func TestCache_distinguishesDifferentLiterals(t *testing.T) {
	c, err := exec.NewCache(8)
	require.NoError(t, err)

	a := mustParse(t, "x + 1")
	b := mustParse(t, "x + 999")

	require.NoError(t, c.Put(a))
	_, ok := c.Get(b.Root)
	assert.False(t, ok, "different literal values must not collide on a cache hit")
}
