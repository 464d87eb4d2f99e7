package length

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/unit-converter/internal/domain"
)

func TestConvert_Identity(t *testing.T) {
	for _, u := range Units() {
		for _, v := range []float64{0, 1, -3.5, 1e-9, 123456.789} {
			assert.Equal(t, v, Convert(v, u, u))
			assert.Equal(t, float32(v), Convert(float32(v), u, u))
		}
	}
}

func TestConvert_CrossChecks(t *testing.T) {
	assert.InDelta(t, 3.281, Convert(1.0, Meter, Foot), 1e-3)
	assert.InDelta(t, 25.4, Convert(1.0, Inch, Millimeter), 1e-9)
	assert.InDelta(t, 1852, Convert(1.0, NauticalMile, Meter), 1e-9)
	assert.InDelta(t, 0.001, Convert(1.0, Meter, Kilometer), 1e-12)
	assert.InDelta(t, 1e6, Convert(1.0, Meter, Micrometer), 1e-6)
	assert.InDelta(t, 12, Convert(1.0, Foot, Inch), 1e-9)
	assert.InDelta(t, 3, Convert(1.0, Yard, Foot), 1e-9)
	assert.InDelta(t, 1760, Convert(1.0, Mile, Yard), 1e-9)
	assert.InDelta(t, 5280, Convert(1.0, Mile, Foot), 1e-9)
	assert.InDelta(t, 1.852, Convert(1.0, NauticalMile, Kilometer), 1e-12)
	assert.InDelta(t, 3.281, Convert(float32(1), Meter, Foot), 1e-3)
}

// The old per-pair table gave yard and mile the same factors as foot.
// With a single pivot they must differ.
func TestConvert_YardAndMileDifferFromFoot(t *testing.T) {
	ft := Convert(1.0, Meter, Foot)
	yd := Convert(1.0, Meter, Yard)
	mi := Convert(1.0, Meter, Mile)

	assert.InDelta(t, ft/3, yd, 1e-12)
	assert.InDelta(t, ft/5280, mi, 1e-12)
}

func TestConvert_RoundTripEveryPair(t *testing.T) {
	approx := cmpopts.EquateApprox(1e-3, 0)
	values := []float64{1, 0.5, 42, 1e-4, 9.81e5, -17.25}

	for _, a := range Units() {
		for _, b := range Units() {
			got := make([]float64, len(values))
			for i, v := range values {
				got[i] = Convert(Convert(v, a, b), b, a)
			}
			if diff := cmp.Diff(values, got, approx); diff != "" {
				t.Errorf("%v -> %v -> %v round trip mismatch (-want +got):\n%s", a, b, a, diff)
			}
		}
	}
}

func TestConvert_RoundTripFloat32(t *testing.T) {
	approx := cmpopts.EquateApprox(1e-3, 0)
	for _, a := range Units() {
		for _, b := range Units() {
			v := float32(7.5)
			back := Convert(Convert(v, a, b), b, a)
			if !cmp.Equal(float64(v), float64(back), approx) {
				t.Errorf("%v -> %v -> %v: got %v, want %v", a, b, a, back, v)
			}
		}
	}
}

func TestFactor_IsReciprocal(t *testing.T) {
	for _, a := range Units() {
		for _, b := range Units() {
			assert.InEpsilon(t, 1.0, Factor(a, b)*Factor(b, a), 1e-12, "%v/%v", a, b)
		}
	}
	assert.Equal(t, 1.0, Factor(Mile, Mile))
}

func TestConvert_NoValidation(t *testing.T) {
	assert.InDelta(t, -100, Convert(-1.0, Meter, Centimeter), 1e-9)
	assert.True(t, math.IsNaN(Convert(math.NaN(), Inch, Foot)))
	assert.True(t, math.IsInf(Convert(math.Inf(-1), Mile, Meter), -1))
}

func TestConvert_PanicsOnUndeclaredUnit(t *testing.T) {
	assert.Panics(t, func() { Convert(1.0, Unit(0), Meter) })
	assert.Panics(t, func() { Convert(1.0, Meter, Unit(99)) })
	assert.Panics(t, func() { Factor(Unit(99), Unit(99)) })
}

func TestMeasurement_To(t *testing.T) {
	m := New(1.0, Meter)
	assert.InDelta(t, 100, m.To(Centimeter), 1e-9)
	assert.Equal(t, 1.0, m.To(Meter))
}

func TestParseUnit(t *testing.T) {
	tests := map[string]Unit{
		"meter":         Meter,
		"Metres":        Meter,
		"m":             Meter,
		"µm":            Micrometer,
		"um":            Micrometer,
		"MM":            Millimeter,
		"cm":            Centimeter,
		"km":            Kilometer,
		"in":            Inch,
		"feet":          Foot,
		"ft":            Foot,
		"yd":            Yard,
		"yards":         Yard,
		"mile":          Mile,
		"miles":         Mile,
		"nautical mile": NauticalMile,
		"nautical_mile": NauticalMile,
		"nmi":           NauticalMile,
	}
	for in, want := range tests {
		got, err := ParseUnit(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseUnit("furlong")
	require.ErrorIs(t, err, domain.ErrUnknownUnit)
	assert.Contains(t, err.Error(), "length")
}

func TestUnits_DeclarationOrderAndLabels(t *testing.T) {
	got := Units()
	require.Len(t, got, 10)
	assert.Equal(t, Micrometer, got[0])
	assert.Equal(t, NauticalMile, got[9])

	seen := map[string]bool{}
	for _, u := range got {
		assert.False(t, seen[u.String()], "duplicate label %q", u)
		seen[u.String()] = true

		text, err := u.MarshalText()
		require.NoError(t, err)
		var back Unit
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, u, back)
	}

	got[0] = Mile
	assert.Equal(t, Micrometer, Units()[0], "Units returns a copy")
}
