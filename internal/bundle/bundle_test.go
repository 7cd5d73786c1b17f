package bundle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBundlePreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	b := New()
	b.Set("c", 1)
	b.Set("a", 2)
	b.Set("b", 3)

	require.Equal(t, []string{"c", "a", "b"}, b.Keys())
}

func TestBundleReorderDropsMissingAndFailed(t *testing.T) {
	t.Parallel()

	b := New()
	b.Set("g", map[string]any{"n": 1})

	reordered := b.Reorder([]string{"g", "b"})
	require.Equal(t, []string{"g"}, reordered.Keys())
	require.False(t, reordered.Has("b"))
}

func TestBundleCloneIsolatesMutation(t *testing.T) {
	t.Parallel()

	b := New()
	b.Set("x", map[string]any{"n": float64(1)})

	clone, err := b.Clone()
	require.NoError(t, err)

	clone.Set("x", map[string]any{"n": float64(99)})

	original, _ := b.Get("x")
	require.Equal(t, map[string]any{"n": float64(1)}, original)
}

func TestBundleDelete(t *testing.T) {
	t.Parallel()

	b := New()
	b.Set("a", 1)
	b.Set("b", 2)
	b.Delete("a")

	require.Equal(t, []string{"b"}, b.Keys())
	require.False(t, b.Has("a"))
}
