package valueobject

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// DimensionUnit represents a unit of length measurement
type DimensionUnit string

const (
	Millimeter DimensionUnit = "mm"
	Centimeter DimensionUnit = "cm"
	Meter      DimensionUnit = "m"
	Inch       DimensionUnit = "in"
	Foot       DimensionUnit = "ft"
)

// millimetersPerUnit holds the fixed conversion factor of each unit to millimeters
var millimetersPerUnit = map[DimensionUnit]decimal.Decimal{
	Millimeter: decimal.NewFromInt(1),
	Centimeter: decimal.NewFromInt(10),
	Meter:      decimal.NewFromInt(1000),
	Inch:       decimal.NewFromFloat(25.4),
	Foot:       decimal.NewFromFloat(304.8),
}

// maxDimensionMillimeters caps any single side at 100 m
var maxDimensionMillimeters = decimal.NewFromInt(100_000)

// squareTolerance is the relative tolerance used for square/cube checks
var squareTolerance = decimal.NewFromFloat(0.001)

// ShippingSizeClass buckets dimensions for shipping purposes
type ShippingSizeClass string

const (
	SizeClassSmall     ShippingSizeClass = "small"
	SizeClassMedium    ShippingSizeClass = "medium"
	SizeClassLarge     ShippingSizeClass = "large"
	SizeClassOversized ShippingSizeClass = "oversized"
)

// Dimensions is an immutable value object representing the physical
// size of an item. Conversions go through millimeters.
type Dimensions struct {
	length decimal.Decimal
	width  decimal.Decimal
	height decimal.Decimal
	unit   DimensionUnit
}

// NewDimensions creates Dimensions from decimal sides and a unit.
// Each side must be positive and its millimeter equivalent must not
// exceed 100 m.
func NewDimensions(length, width, height decimal.Decimal, unit DimensionUnit) (Dimensions, error) {
	factor, ok := millimetersPerUnit[unit]
	if !ok {
		return Dimensions{}, fmt.Errorf("unsupported dimension unit: %q", unit)
	}
	for _, side := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"length", length},
		{"width", width},
		{"height", height},
	} {
		if !side.value.IsPositive() {
			return Dimensions{}, fmt.Errorf("%s must be positive: %s", side.name, side.value)
		}
		if side.value.Mul(factor).GreaterThan(maxDimensionMillimeters) {
			return Dimensions{}, fmt.Errorf("%s exceeds maximum of %s mm", side.name, maxDimensionMillimeters)
		}
	}
	return Dimensions{length: length, width: width, height: height, unit: unit}, nil
}

// NewDimensionsFromFloat creates Dimensions from float64 sides.
// NaN and infinite values are rejected.
func NewDimensionsFromFloat(length, width, height float64, unit DimensionUnit) (Dimensions, error) {
	for _, v := range []float64{length, width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return Dimensions{}, fmt.Errorf("dimensions must be finite numbers")
		}
	}
	return NewDimensions(
		decimal.NewFromFloat(length),
		decimal.NewFromFloat(width),
		decimal.NewFromFloat(height),
		unit,
	)
}

// MustNewDimensions creates Dimensions and panics on error
func MustNewDimensions(length, width, height decimal.Decimal, unit DimensionUnit) Dimensions {
	d, err := NewDimensions(length, width, height, unit)
	if err != nil {
		panic(err)
	}
	return d
}

// Length returns the length in the dimensions' own unit
func (d Dimensions) Length() decimal.Decimal { return d.length }

// Width returns the width in the dimensions' own unit
func (d Dimensions) Width() decimal.Decimal { return d.width }

// Height returns the height in the dimensions' own unit
func (d Dimensions) Height() decimal.Decimal { return d.height }

// Unit returns the dimensions' unit
func (d Dimensions) Unit() DimensionUnit { return d.unit }

// toMillimeters returns the three sides converted to millimeters
func (d Dimensions) toMillimeters() (l, w, h decimal.Decimal) {
	factor := millimetersPerUnit[d.unit]
	return d.length.Mul(factor), d.width.Mul(factor), d.height.Mul(factor)
}

// ConvertTo converts all sides to another unit, going through
// millimeters and rounding to 3 decimal places.
func (d Dimensions) ConvertTo(unit DimensionUnit) (Dimensions, error) {
	factor, ok := millimetersPerUnit[unit]
	if !ok {
		return Dimensions{}, fmt.Errorf("unsupported dimension unit: %q", unit)
	}
	if unit == d.unit {
		return d, nil
	}
	l, w, h := d.toMillimeters()
	return Dimensions{
		length: l.Div(factor).Round(3),
		width:  w.Div(factor).Round(3),
		height: h.Div(factor).Round(3),
		unit:   unit,
	}, nil
}

// Volume returns length*width*height in the dimensions' own unit cubed
func (d Dimensions) Volume() decimal.Decimal {
	return d.length.Mul(d.width).Mul(d.height)
}

// VolumeCm3 returns the volume in cubic centimeters
func (d Dimensions) VolumeCm3() decimal.Decimal {
	l, w, h := d.toMillimeters()
	// 1 cm³ = 1000 mm³
	return l.Mul(w).Mul(h).Div(decimal.NewFromInt(1000))
}

// VolumeM3 returns the volume in cubic meters
func (d Dimensions) VolumeM3() decimal.Decimal {
	l, w, h := d.toMillimeters()
	return l.Mul(w).Mul(h).Div(decimal.NewFromInt(1_000_000_000))
}

// SurfaceArea returns 2(lw + lh + wh) in the dimensions' own unit squared
func (d Dimensions) SurfaceArea() decimal.Decimal {
	lw := d.length.Mul(d.width)
	lh := d.length.Mul(d.height)
	wh := d.width.Mul(d.height)
	return lw.Add(lh).Add(wh).Mul(decimal.NewFromInt(2))
}

// LongestSide returns the largest of the three sides in the own unit
func (d Dimensions) LongestSide() decimal.Decimal {
	sides := d.sortedSides()
	return sides[2]
}

// ShortestSide returns the smallest of the three sides in the own unit
func (d Dimensions) ShortestSide() decimal.Decimal {
	sides := d.sortedSides()
	return sides[0]
}

// sortedSides returns the sides in the own unit, ascending
func (d Dimensions) sortedSides() []decimal.Decimal {
	sides := []decimal.Decimal{d.length, d.width, d.height}
	sort.Slice(sides, func(i, j int) bool { return sides[i].LessThan(sides[j]) })
	return sides
}

// withinTolerance reports whether a and b differ by at most the relative
// square tolerance of the larger value.
func withinTolerance(a, b decimal.Decimal) bool {
	diff := a.Sub(b).Abs()
	larger := a
	if b.GreaterThan(a) {
		larger = b
	}
	return diff.LessThanOrEqual(larger.Mul(squareTolerance))
}

// IsSquareBase returns true when length and width are equal within tolerance
func (d Dimensions) IsSquareBase() bool {
	return withinTolerance(d.length, d.width)
}

// IsCube returns true when all three sides are equal within tolerance
func (d Dimensions) IsCube() bool {
	return withinTolerance(d.length, d.width) &&
		withinTolerance(d.width, d.height) &&
		withinTolerance(d.length, d.height)
}

// IsFlat returns true when the shortest side is less than a tenth of the
// longest side
func (d Dimensions) IsFlat() bool {
	longest := d.LongestSide()
	if longest.IsZero() {
		return false
	}
	ratio := d.ShortestSide().Div(longest)
	return ratio.LessThan(decimal.NewFromFloat(0.1))
}

// FitsInBox reports whether this item fits inside the given box,
// allowing rotation: both dimension triples are converted to
// millimeters, sorted ascending, and compared elementwise.
func (d Dimensions) FitsInBox(box Dimensions) bool {
	item := d.sortedSidesMillimeters()
	outer := box.sortedSidesMillimeters()
	for i := range item {
		if item[i].GreaterThan(outer[i]) {
			return false
		}
	}
	return true
}

func (d Dimensions) sortedSidesMillimeters() []decimal.Decimal {
	l, w, h := d.toMillimeters()
	sides := []decimal.Decimal{l, w, h}
	sort.Slice(sides, func(i, j int) bool { return sides[i].LessThan(sides[j]) })
	return sides
}

// ShippingClass buckets the dimensions by volume in cm³ and the longest
// side in cm
func (d Dimensions) ShippingClass() ShippingSizeClass {
	volume := d.VolumeCm3()
	longestCm := d.sortedSidesMillimeters()[2].Div(decimal.NewFromInt(10))
	switch {
	case volume.LessThanOrEqual(decimal.NewFromInt(1000)) && longestCm.LessThanOrEqual(decimal.NewFromInt(20)):
		return SizeClassSmall
	case volume.LessThanOrEqual(decimal.NewFromInt(25000)) && longestCm.LessThanOrEqual(decimal.NewFromInt(50)):
		return SizeClassMedium
	case volume.LessThanOrEqual(decimal.NewFromInt(100000)) && longestCm.LessThanOrEqual(decimal.NewFromInt(120)):
		return SizeClassLarge
	default:
		return SizeClassOversized
	}
}

// String returns a human-readable representation, e.g. "30 x 20 x 10 cm"
func (d Dimensions) String() string {
	return fmt.Sprintf("%s x %s x %s %s", d.length, d.width, d.height, d.unit)
}
