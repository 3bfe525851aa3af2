package valueobject

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSKU(t *testing.T) {
	t.Run("normalizes to uppercase and trims", func(t *testing.T) {
		sku, err := NewSKU("  abc-123  ")
		require.NoError(t, err)
		assert.Equal(t, "ABC-123", sku.Value())
	})

	t.Run("accepts underscores and hyphens in the body", func(t *testing.T) {
		sku, err := NewSKU("AB_CD-12")
		require.NoError(t, err)
		assert.Equal(t, "AB_CD-12", sku.Value())
	})

	t.Run("fails when too short or too long", func(t *testing.T) {
		_, err := NewSKU("AB")
		require.Error(t, err)

		_, err = NewSKU(strings.Repeat("A", 51))
		require.Error(t, err)

		_, err = NewSKU(strings.Repeat("A", 50))
		require.NoError(t, err)
	})

	t.Run("fails with leading or trailing separator", func(t *testing.T) {
		_, err := NewSKU("-ABC")
		require.Error(t, err)
		_, err = NewSKU("ABC_")
		require.Error(t, err)
	})

	t.Run("fails with invalid characters", func(t *testing.T) {
		_, err := NewSKU("AB C")
		require.Error(t, err)
		_, err = NewSKU("AB.C")
		require.Error(t, err)
	})
}

func TestGenerateSKU(t *testing.T) {
	t.Run("generates a valid SKU with default prefix", func(t *testing.T) {
		sku := GenerateSKU("")
		assert.True(t, strings.HasPrefix(sku.Value(), "SKU-"))

		// generated value must satisfy the explicit constructor too
		_, err := NewSKU(sku.Value())
		require.NoError(t, err)
	})

	t.Run("uses and uppercases the given prefix", func(t *testing.T) {
		sku := GenerateSKU("widget")
		assert.True(t, strings.HasPrefix(sku.Value(), "WIDGET-"))
	})

	t.Run("strips separators from the prefix", func(t *testing.T) {
		sku := GenerateSKU("my-prefix")
		assert.True(t, strings.HasPrefix(sku.Value(), "MYPREFIX-"))
	})

	t.Run("successive generations differ", func(t *testing.T) {
		seen := make(map[string]bool)
		for i := 0; i < 20; i++ {
			seen[GenerateSKU("").Value()] = true
		}
		assert.Greater(t, len(seen), 1)
	})
}

func TestSKUIsGenerated(t *testing.T) {
	t.Run("detects generated SKUs", func(t *testing.T) {
		assert.True(t, GenerateSKU("").IsGenerated())
		assert.True(t, GenerateSKU("WIDGET").IsGenerated())
	})

	t.Run("plain custom SKUs are not flagged", func(t *testing.T) {
		assert.False(t, MustNewSKU("BLUE-WIDGET").IsGenerated())
		assert.False(t, MustNewSKU("ACME_001").IsGenerated())
	})

	t.Run("heuristic can misfire on lookalike input", func(t *testing.T) {
		// a hand-entered SKU that happens to match the generated shape
		assert.True(t, MustNewSKU("ACME-2024-X9ZQ").IsGenerated())
	})
}
