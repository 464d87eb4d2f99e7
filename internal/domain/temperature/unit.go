package temperature

import (
	"fmt"

	"github.com/couchcryptid/unit-converter/internal/domain"
)

// Quantity names this package in labels, metrics, and error messages.
const Quantity = "temperature"

// Unit is a temperature scale.
type Unit uint8

const (
	Celsius Unit = iota + 1
	Fahrenheit
	Kelvin
)

var units = []Unit{Celsius, Fahrenheit, Kelvin}

var labels = map[Unit]string{
	Celsius:    "celsius",
	Fahrenheit: "fahrenheit",
	Kelvin:     "kelvin",
}

var symbols = map[Unit]string{
	Celsius:    "°C",
	Fahrenheit: "°F",
	Kelvin:     "K",
}

// aliases maps normalized labels to units. "faherenheit" is kept because
// old bookmarks of the site still use it.
var aliases = map[string]Unit{
	"c":           Celsius,
	"°c":          Celsius,
	"celsius":     Celsius,
	"centigrade":  Celsius,
	"f":           Fahrenheit,
	"°f":          Fahrenheit,
	"fahrenheit":  Fahrenheit,
	"faherenheit": Fahrenheit,
	"k":           Kelvin,
	"kelvin":      Kelvin,
}

// Units returns every temperature unit in declaration order.
func Units() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// ParseUnit looks up a unit by label, symbol, or alias, ignoring case.
func ParseUnit(s string) (Unit, error) {
	if u, ok := aliases[domain.NormalizeLabel(s)]; ok {
		return u, nil
	}
	return 0, domain.UnknownUnitError(Quantity, s)
}

// Valid reports whether u is one of the declared units.
func (u Unit) Valid() bool {
	_, ok := labels[u]
	return ok
}

func (u Unit) String() string {
	if l, ok := labels[u]; ok {
		return l
	}
	return fmt.Sprintf("temperature.Unit(%d)", uint8(u))
}

// Symbol returns the conventional abbreviation, e.g. "°C".
func (u Unit) Symbol() string {
	return symbols[u]
}

func (u Unit) MarshalText() ([]byte, error) {
	if !u.Valid() {
		return nil, domain.UnknownUnitError(Quantity, u.String())
	}
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}
