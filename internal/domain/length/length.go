// Package length converts values between metric and imperial units of length.
//
// Every conversion pivots through meters, so only one factor per unit is
// stored and convert(convert(x, A, B), B, A) returns x up to rounding.
package length

import "github.com/couchcryptid/unit-converter/internal/domain"

// Factor returns how many to-units make up one from-unit.
// It panics if either unit is not declared.
func Factor(from, to Unit) float64 {
	if from == to && from.Valid() {
		return 1
	}
	return from.Meters() / to.Meters()
}

// Convert converts value between length units. It panics if either unit is
// not declared.
func Convert[T domain.Float](value T, from, to Unit) T {
	if from == to && from.Valid() {
		return value
	}
	return value * T(Factor(from, to))
}

// Measurement is a value tagged with its unit.
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
