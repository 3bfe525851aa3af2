package valueobject

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWeight(t *testing.T) {
	t.Run("creates weight with valid value", func(t *testing.T) {
		w, err := NewWeight(decimal.NewFromFloat(1.5), Kilogram)
		require.NoError(t, err)
		assert.True(t, w.Value().Equal(decimal.NewFromFloat(1.5)))
		assert.Equal(t, Kilogram, w.Unit())
	})

	t.Run("fails with negative value", func(t *testing.T) {
		_, err := NewWeight(decimal.NewFromInt(-1), Gram)
		require.Error(t, err)
	})

	t.Run("fails with unsupported unit", func(t *testing.T) {
		_, err := NewWeight(decimal.NewFromInt(1), WeightUnit("stone"))
		require.Error(t, err)
	})

	t.Run("fails above one tonne equivalent", func(t *testing.T) {
		_, err := NewWeight(decimal.NewFromInt(1001), Kilogram)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "maximum")

		_, err = NewWeight(decimal.NewFromInt(1000), Kilogram)
		require.NoError(t, err)
	})

	t.Run("rejects NaN and infinity", func(t *testing.T) {
		_, err := NewWeightFromFloat(math.NaN(), Gram)
		require.Error(t, err)
		_, err = NewWeightFromFloat(math.Inf(1), Gram)
		require.Error(t, err)
	})
}

func TestWeightConversion(t *testing.T) {
	t.Run("converts kilograms to grams", func(t *testing.T) {
		w := MustNewWeight(decimal.NewFromFloat(2.5), Kilogram)
		assert.True(t, w.ToGrams().Equal(decimal.NewFromInt(2500)))
	})

	t.Run("converts pounds through grams", func(t *testing.T) {
		w := MustNewWeight(decimal.NewFromInt(1), Pound)
		converted, err := w.ConvertTo(Gram)
		require.NoError(t, err)
		assert.True(t, converted.Value().Equal(decimal.NewFromFloat(453.592)))
	})

	t.Run("conversion round-trip preserves gram value within tolerance", func(t *testing.T) {
		units := []WeightUnit{Gram, Kilogram, Pound, Ounce}
		// each ConvertTo rounds to 3 decimals in the target unit, so a
		// round-trip through kilograms can drift by up to a gram
		tolerance := decimal.NewFromInt(1)
		for _, from := range units {
			for _, to := range units {
				w := MustNewWeight(decimal.NewFromFloat(7.25), from)
				converted, err := w.ConvertTo(to)
				require.NoError(t, err)
				back, err := converted.ConvertTo(from)
				require.NoError(t, err)
				diff := back.ToGrams().Sub(w.ToGrams()).Abs()
				assert.True(t, diff.LessThanOrEqual(tolerance),
					"round-trip %s -> %s drift %s", from, to, diff)
			}
		}
	})
}

func TestWeightArithmetic(t *testing.T) {
	t.Run("add expresses result in left operand unit", func(t *testing.T) {
		kg := MustNewWeight(decimal.NewFromInt(1), Kilogram)
		g := MustNewWeight(decimal.NewFromInt(500), Gram)
		result, err := kg.Add(g)
		require.NoError(t, err)
		assert.True(t, result.Value().Equal(decimal.NewFromFloat(1.5)))
		assert.Equal(t, Kilogram, result.Unit())
	})

	t.Run("subtract fails on negative result", func(t *testing.T) {
		a := MustNewWeight(decimal.NewFromInt(100), Gram)
		b := MustNewWeight(decimal.NewFromInt(1), Kilogram)
		_, err := a.Subtract(b)
		require.Error(t, err)
	})

	t.Run("subtract computes in grams", func(t *testing.T) {
		a := MustNewWeight(decimal.NewFromInt(2), Kilogram)
		b := MustNewWeight(decimal.NewFromInt(250), Gram)
		result, err := a.Subtract(b)
		require.NoError(t, err)
		assert.True(t, result.Value().Equal(decimal.NewFromFloat(1.75)))
		assert.Equal(t, Kilogram, result.Unit())
	})

	t.Run("multiply scales the raw value", func(t *testing.T) {
		w := MustNewWeight(decimal.NewFromFloat(1.5), Kilogram)
		result, err := w.Multiply(decimal.NewFromInt(3))
		require.NoError(t, err)
		assert.True(t, result.Value().Equal(decimal.NewFromFloat(4.5)))
	})

	t.Run("multiply fails with negative factor", func(t *testing.T) {
		w := MustNewWeight(decimal.NewFromInt(1), Kilogram)
		_, err := w.Multiply(decimal.NewFromInt(-1))
		require.Error(t, err)
	})

	t.Run("divide fails with non-positive divisor", func(t *testing.T) {
		w := MustNewWeight(decimal.NewFromInt(1), Kilogram)
		_, err := w.Divide(decimal.Zero)
		require.Error(t, err)
		_, err = w.Divide(decimal.NewFromInt(-2))
		require.Error(t, err)
	})
}

func TestWeightClassification(t *testing.T) {
	t.Run("lightweight and heavy thresholds", func(t *testing.T) {
		assert.True(t, MustNewWeight(decimal.NewFromInt(499), Gram).IsLightweight())
		assert.False(t, MustNewWeight(decimal.NewFromInt(500), Gram).IsLightweight())
		assert.True(t, MustNewWeight(decimal.NewFromInt(6), Kilogram).IsHeavy())
		assert.False(t, MustNewWeight(decimal.NewFromInt(5), Kilogram).IsHeavy())
	})

	t.Run("shipping class buckets by grams", func(t *testing.T) {
		cases := []struct {
			grams    int64
			expected ShippingWeightClass
		}{
			{50, ShippingClassLetter},
			{100, ShippingClassLetter},
			{101, ShippingClassSmall},
			{500, ShippingClassSmall},
			{2000, ShippingClassStandard},
			{10000, ShippingClassLarge},
			{10001, ShippingClassHeavy},
		}
		for _, tc := range cases {
			w := MustNewWeight(decimal.NewFromInt(tc.grams), Gram)
			assert.Equal(t, tc.expected, w.ShippingClass(), "%d g", tc.grams)
		}
	})
}
