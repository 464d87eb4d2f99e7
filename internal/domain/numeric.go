package domain

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Float is the set of IEEE-754 widths the converters accept.
type Float interface {
	constraints.Float
}

// ErrUnknownUnit is returned when a unit label does not name any unit of the quantity.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrInvalidValue is returned when a numeric input cannot be parsed or is not finite.
var ErrInvalidValue = errors.New("invalid value")

// ErrOutOfRange is returned when a finite input converts to a value that does
// not fit in the target width.
var ErrOutOfRange = errors.New("result out of range")

// UnknownUnitError reports the label and quantity of a failed unit lookup.
func UnknownUnitError(quantity, label string) error {
	return fmt.Errorf("%w: %q is not a %s unit", ErrUnknownUnit, label, quantity)
}

// NormalizeLabel folds a user supplied unit label for alias lookup:
// lower case, trimmed, with spaces and underscores turned into dashes.
func NormalizeLabel(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "-", "_", "-").Replace(s)
}

// ParseValue parses a finite decimal number. NaN and infinities are rejected
// because they never come from a meaningful measurement.
func ParseValue(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidValue, s)
	}
	return v, nil
}

// FormatValue renders v with the fewest digits that round-trip at the given
// bit size (32 or 64).
func FormatValue[T Float](v T) string {
	return strconv.FormatFloat(float64(v), 'g', -1, reflect.TypeFor[T]().Bits())
}
