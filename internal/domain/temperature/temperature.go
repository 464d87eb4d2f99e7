// Package temperature converts values between Celsius, Fahrenheit, and Kelvin.
//
// All six conversions are affine (a*x + b). Values below absolute zero are
// converted arithmetically without validation.
package temperature

import "github.com/couchcryptid/unit-converter/internal/domain"

// Formula selects the Fahrenheit-to-Celsius factor.
type Formula uint8

const (
	// Exact uses 5/9.
	Exact Formula = iota
	// Legacy uses 0.55, matching the outputs of the first version of the site.
	Legacy
)

const (
	absoluteZeroC = 273.15
	fahrenheitOff = 32
	celsiusToF    = 1.8
	legacyFToC    = 0.55
)

// ParseFormula maps "exact" and "legacy" to a Formula.
func ParseFormula(s string) (Formula, bool) {
	switch domain.NormalizeLabel(s) {
	case "", "exact":
		return Exact, true
	case "legacy":
		return Legacy, true
	}
	return Exact, false
}

func (f Formula) String() string {
	if f == Legacy {
		return "legacy"
	}
	return "exact"
}

// Convert converts value from one scale to another using the exact formula.
func Convert[T domain.Float](value T, from, to Unit) T {
	return ConvertWith(value, from, to, Exact)
}

// ConvertWith converts value from one scale to another with the given
// Fahrenheit-to-Celsius formula. It panics if either unit is not declared.
func ConvertWith[T domain.Float](value T, from, to Unit, f Formula) T {
	if from == to && from.Valid() {
		return value
	}

	switch {
	case from == Celsius && to == Fahrenheit:
		return value*celsiusToF + fahrenheitOff
	case from == Celsius && to == Kelvin:
		return value + absoluteZeroC
	case from == Fahrenheit && to == Celsius:
		return fahrenheitToCelsius(value, f)
	case from == Fahrenheit && to == Kelvin:
		return fahrenheitToCelsius(value, f) + absoluteZeroC
	case from == Kelvin && to == Celsius:
		return value - absoluteZeroC
	case from == Kelvin && to == Fahrenheit:
		return (value-absoluteZeroC)*celsiusToF + fahrenheitOff
	}
	panic("temperature: unexpected unit combination " + from.String() + " -> " + to.String())
}

func fahrenheitToCelsius[T domain.Float](value T, f Formula) T {
	if f == Legacy {
		return (value - fahrenheitOff) * legacyFToC
	}
	return (value - fahrenheitOff) * 5 / 9
}

// Measurement is a value tagged with its scale.
type Measurement[T domain.Float] struct {
	Value T
	Unit  Unit
}

// New creates a Measurement.
func New[T domain.Float](value T, unit Unit) Measurement[T] {
	return Measurement[T]{Value: value, Unit: unit}
}

// To returns the measurement's value expressed in unit.
func (m Measurement[T]) To(unit Unit) T {
	return Convert(m.Value, m.Unit, unit)
}
