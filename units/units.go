// Package units converts store-native weight and dimension values into the
// whole carrier units (pounds, inches) that FedEx bills by. Values always
// round up and never fall below the configured floor, since the carrier
// rejects zero or negative measurements.
package units

import (
	"fmt"
	"math"
)

// Unit is a measurement unit keyword, matching the store's measure settings.
type Unit string

const (
	Pound      Unit = "lb"
	Kilogram   Unit = "kg"
	Gram       Unit = "g"
	Ounce      Unit = "oz"
	Inch       Unit = "inches"
	Centimeter Unit = "cm"
	Millimeter Unit = "mm"
	Meter      Unit = "m"
)

// Carrier units required by the FedEx rate API.
const (
	CarrierWeightUnit    = Pound
	CarrierDimensionUnit = Inch
)

// DefaultFloor is the minimum value reported for any weight or dimension.
const DefaultFloor = 1

var weightToPounds = map[Unit]float64{
	Pound:    1,
	Kilogram: 2.20462262,
	Gram:     0.00220462262,
	Ounce:    0.0625,
}

var dimensionToInches = map[Unit]float64{
	Inch:       1,
	Centimeter: 0.393700787,
	Millimeter: 0.0393700787,
	Meter:      39.3700787,
}

// Convert translates value from one unit to another within the same
// measurement family. An unknown unit is a configuration error.
func Convert(value float64, from, to Unit) (float64, error) {
	if f, ok := weightToPounds[from]; ok {
		t, ok := weightToPounds[to]
		if !ok {
			return 0, fmt.Errorf("cannot convert weight unit %q to %q", from, to)
		}
		return value * f / t, nil
	}
	if f, ok := dimensionToInches[from]; ok {
		t, ok := dimensionToInches[to]
		if !ok {
			return 0, fmt.Errorf("cannot convert dimension unit %q to %q", from, to)
		}
		return value * f / t, nil
	}
	return 0, fmt.Errorf("could not load %q measure unit", from)
}

// Normalize converts value to the target unit, rounds up to a whole unit and
// clamps the result to floor. Rounding up avoids under-quoting: carriers bill
// by whole units.
func Normalize(value float64, from, to Unit, floor int) (int, error) {
	converted, err := Convert(value, from, to)
	if err != nil {
		return 0, err
	}
	n := int(math.Ceil(converted))
	if n < floor {
		n = floor
	}
	return n, nil
}

// NormalizeWeight converts a store-native weight to whole pounds.
func NormalizeWeight(value float64, from Unit, floor int) (int, error) {
	return Normalize(value, from, CarrierWeightUnit, floor)
}

// NormalizeDimension converts a store-native dimension to whole inches.
func NormalizeDimension(value float64, from Unit, floor int) (int, error) {
	return Normalize(value, from, CarrierDimensionUnit, floor)
}
