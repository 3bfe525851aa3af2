package valueobject

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// WeightUnit represents a unit of weight measurement
type WeightUnit string

const (
	Gram     WeightUnit = "g"
	Kilogram WeightUnit = "kg"
	Pound    WeightUnit = "lb"
	Ounce    WeightUnit = "oz"
)

// gramsPerUnit holds the fixed conversion factor of each unit to grams
var gramsPerUnit = map[WeightUnit]decimal.Decimal{
	Gram:     decimal.NewFromInt(1),
	Kilogram: decimal.NewFromInt(1000),
	Pound:    decimal.NewFromFloat(453.592),
	Ounce:    decimal.NewFromFloat(28.3495),
}

// maxWeightGrams caps any weight at one metric tonne
var maxWeightGrams = decimal.NewFromInt(1_000_000)

// ShippingWeightClass buckets a weight for shipping purposes
type ShippingWeightClass string

const (
	ShippingClassLetter   ShippingWeightClass = "letter"
	ShippingClassSmall    ShippingWeightClass = "small_parcel"
	ShippingClassStandard ShippingWeightClass = "standard_parcel"
	ShippingClassLarge    ShippingWeightClass = "large_parcel"
	ShippingClassHeavy    ShippingWeightClass = "heavy"
)

// Weight is an immutable value object representing a physical weight.
// Arithmetic is computed on the gram equivalent; the unit is retained
// for presentation.
type Weight struct {
	value decimal.Decimal
	unit  WeightUnit
}

// NewWeight creates a Weight from a decimal value and unit.
// The value must be non-negative and its gram equivalent must not
// exceed 1,000,000 g.
func NewWeight(value decimal.Decimal, unit WeightUnit) (Weight, error) {
	factor, ok := gramsPerUnit[unit]
	if !ok {
		return Weight{}, fmt.Errorf("unsupported weight unit: %q", unit)
	}
	if value.IsNegative() {
		return Weight{}, fmt.Errorf("weight cannot be negative: %s", value)
	}
	if value.Mul(factor).GreaterThan(maxWeightGrams) {
		return Weight{}, fmt.Errorf("weight exceeds maximum of %s g", maxWeightGrams)
	}
	return Weight{value: value, unit: unit}, nil
}

// NewWeightFromFloat creates a Weight from a float64 value.
// NaN and infinite values are rejected.
func NewWeightFromFloat(value float64, unit WeightUnit) (Weight, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Weight{}, fmt.Errorf("weight must be a finite number")
	}
	return NewWeight(decimal.NewFromFloat(value), unit)
}

// NewWeightGrams creates a Weight in grams
func NewWeightGrams(value decimal.Decimal) (Weight, error) {
	return NewWeight(value, Gram)
}

// MustNewWeight creates a Weight and panics on error
func MustNewWeight(value decimal.Decimal, unit WeightUnit) Weight {
	w, err := NewWeight(value, unit)
	if err != nil {
		panic(err)
	}
	return w
}

// Value returns the raw value in the weight's own unit
func (w Weight) Value() decimal.Decimal {
	return w.value
}

// Unit returns the weight's unit
func (w Weight) Unit() WeightUnit {
	return w.unit
}

// ToGrams returns the gram equivalent of this weight
func (w Weight) ToGrams() decimal.Decimal {
	return w.value.Mul(gramsPerUnit[w.unit])
}

// ConvertTo converts the weight to another unit, going through grams
// and rounding to 3 decimal places.
func (w Weight) ConvertTo(unit WeightUnit) (Weight, error) {
	factor, ok := gramsPerUnit[unit]
	if !ok {
		return Weight{}, fmt.Errorf("unsupported weight unit: %q", unit)
	}
	if unit == w.unit {
		return w, nil
	}
	converted := w.ToGrams().Div(factor).Round(3)
	return Weight{value: converted, unit: unit}, nil
}

// Add sums two weights. The computation happens in grams and the result
// is expressed in the left operand's unit.
func (w Weight) Add(other Weight) (Weight, error) {
	totalGrams := w.ToGrams().Add(other.ToGrams())
	if totalGrams.GreaterThan(maxWeightGrams) {
		return Weight{}, fmt.Errorf("weight exceeds maximum of %s g", maxWeightGrams)
	}
	value := totalGrams.Div(gramsPerUnit[w.unit]).Round(3)
	return Weight{value: value, unit: w.unit}, nil
}

// Subtract subtracts another weight. Fails if the result would be
// negative; the result is expressed in the left operand's unit.
func (w Weight) Subtract(other Weight) (Weight, error) {
	resultGrams := w.ToGrams().Sub(other.ToGrams())
	if resultGrams.IsNegative() {
		return Weight{}, fmt.Errorf("subtraction would result in negative weight")
	}
	value := resultGrams.Div(gramsPerUnit[w.unit]).Round(3)
	return Weight{value: value, unit: w.unit}, nil
}

// Multiply scales the raw value by a non-negative factor
func (w Weight) Multiply(factor decimal.Decimal) (Weight, error) {
	if factor.IsNegative() {
		return Weight{}, fmt.Errorf("factor cannot be negative: %s", factor)
	}
	return NewWeight(w.value.Mul(factor), w.unit)
}

// Divide divides the raw value by a positive divisor
func (w Weight) Divide(divisor decimal.Decimal) (Weight, error) {
	if divisor.IsZero() || divisor.IsNegative() {
		return Weight{}, fmt.Errorf("divisor must be positive: %s", divisor)
	}
	return NewWeight(w.value.Div(divisor).Round(3), w.unit)
}

// IsLightweight returns true for weights under 500 g
func (w Weight) IsLightweight() bool {
	return w.ToGrams().LessThan(decimal.NewFromInt(500))
}

// IsHeavy returns true for weights over 5 kg
func (w Weight) IsHeavy() bool {
	return w.ToGrams().GreaterThan(decimal.NewFromInt(5000))
}

// ShippingClass buckets the weight by gram thresholds
func (w Weight) ShippingClass() ShippingWeightClass {
	grams := w.ToGrams()
	switch {
	case grams.LessThanOrEqual(decimal.NewFromInt(100)):
		return ShippingClassLetter
	case grams.LessThanOrEqual(decimal.NewFromInt(500)):
		return ShippingClassSmall
	case grams.LessThanOrEqual(decimal.NewFromInt(2000)):
		return ShippingClassStandard
	case grams.LessThanOrEqual(decimal.NewFromInt(10000)):
		return ShippingClassLarge
	default:
		return ShippingClassHeavy
	}
}

// Equals returns true if both weights represent the same gram value
func (w Weight) Equals(other Weight) bool {
	return w.ToGrams().Equal(other.ToGrams())
}

// String returns a human-readable representation, e.g. "1.5 kg"
func (w Weight) String() string {
	return fmt.Sprintf("%s %s", w.value, w.unit)
}
