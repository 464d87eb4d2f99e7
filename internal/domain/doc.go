// Package domain holds the conversion core of the unit converter.
//
// # Quantities
//
// Two independent, stateless libraries live in subpackages:
//
//	temperature  Celsius, Fahrenheit, Kelvin (affine formulas)
//	length       micrometer … nautical mile (scalar factors)
//
// Neither depends on the other. Both are leaves consumed by the HTTP adapter
// and the CLI, which parse user input into a value and two units, call
// Convert, and present the result.
//
// # Numeric width
//
// Every converter is generic over [Float], so the same constants serve float32
// and float64 callers. Only the magnitude of rounding error differs.
//
// # Identity
//
// Converting a value to its own unit returns the input unchanged, exactly.
// This is checked before any arithmetic so no rounding can creep in.
//
// # Length pivot
//
// Length conversions go through meters: the value is scaled by the source
// unit's meters-per-unit factor and divided by the target's. Ten factors cover
// all ninety ordered pairs and guarantee round-trip consistency.
//
// # Errors
//
// Units are closed enumerations. Passing a value outside the enumeration to a
// converter is a programming error and panics. Parsing a unit label at the
// input boundary is the only recoverable failure; it returns an error wrapping
// [ErrUnknownUnit].
package domain
