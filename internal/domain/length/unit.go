package length

import (
	"fmt"

	"github.com/couchcryptid/unit-converter/internal/domain"
)

// Quantity names this package in labels, metrics, and error messages.
const Quantity = "length"

// Unit is a linear unit of length.
type Unit uint8

const (
	Micrometer Unit = iota + 1
	Millimeter
	Centimeter
	Meter
	Kilometer
	Inch
	Foot
	Yard
	Mile
	NauticalMile
)

type unitInfo struct {
	label  string
	symbol string
	meters float64 // meters per one unit
}

// table uses the international yard and pound definitions (1959) and the
// international nautical mile.
var table = map[Unit]unitInfo{
	Micrometer:   {"micrometer", "µm", 1e-6},
	Millimeter:   {"millimeter", "mm", 1e-3},
	Centimeter:   {"centimeter", "cm", 1e-2},
	Meter:        {"meter", "m", 1},
	Kilometer:    {"kilometer", "km", 1e3},
	Inch:         {"inch", "in", 0.0254},
	Foot:         {"foot", "ft", 0.3048},
	Yard:         {"yard", "yd", 0.9144},
	Mile:         {"mile", "mi", 1609.344},
	NauticalMile: {"nautical-mile", "nmi", 1852},
}

var units = []Unit{
	Micrometer, Millimeter, Centimeter, Meter, Kilometer,
	Inch, Foot, Yard, Mile, NauticalMile,
}

var aliases = func() map[string]Unit {
	m := map[string]Unit{
		"um": Micrometer, "micron": Micrometer, "micrometre": Micrometer, "micrometers": Micrometer,
		"millimetre": Millimeter, "millimeters": Millimeter,
		"centimetre": Centimeter, "centimeters": Centimeter,
		"metre": Meter, "meters": Meter, "metres": Meter,
		"kilometre": Kilometer, "kilometers": Kilometer,
		"inches": Inch, "\"": Inch,
		"feet": Foot, "'": Foot,
		"yards": Yard, "miles": Mile,
		"nauticalmile": NauticalMile, "nautical-miles": NauticalMile, "nautic-mile": NauticalMile,
	}
	for u, info := range table {
		m[info.label] = u
		m[domain.NormalizeLabel(info.symbol)] = u
	}
	return m
}()

// Units returns every length unit in declaration order.
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
	_, ok := table[u]
	return ok
}

func (u Unit) String() string {
	if info, ok := table[u]; ok {
		return info.label
	}
	return fmt.Sprintf("length.Unit(%d)", uint8(u))
}

// Symbol returns the conventional abbreviation, e.g. "ft".
func (u Unit) Symbol() string {
	return table[u].symbol
}

// Meters returns how many meters one u is. It panics on undeclared units.
func (u Unit) Meters() float64 {
	info, ok := table[u]
	if !ok {
		panic("length: unexpected unit " + u.String())
	}
	return info.meters
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
