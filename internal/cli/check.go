package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"

	"github.com/couchcryptid/unit-converter/internal/domain/length"
	"github.com/couchcryptid/unit-converter/internal/domain/temperature"
)

// errChecksFailed is returned when any phase reports an error.
var errChecksFailed = errors.New("conversion checks failed")

var sampleValues = []float64{-459.67, -40, 0, 36.6, 100, 1e6}

func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the conversion tables against known reference values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			phases := runChecks()
			c.Logger.Debug("checks finished", "phases", len(phases))
			if !report(cmd.OutOrStdout(), phases) {
				return errChecksFailed
			}
			return nil
		},
	}
}

// phase tracks pass/fail for one group of checks.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

// expect records an error unless got is within tolerance of want.
func (p *phase) expect(what string, got, want float64) {
	if !cmp.Equal(got, want, cmpopts.EquateApprox(1e-12, 1e-9)) {
		p.errorf("%s = %v, want %v", what, got, want)
	}
}

func runChecks() []*phase {
	return []*phase{
		checkIdentity(),
		checkFixedPoints(),
		checkLengthReferences(),
		checkRoundTrips(),
	}
}

// report prints a summary line per phase followed by the errors of failed
// phases. It returns whether every phase passed.
func report(w io.Writer, phases []*phase) bool {
	allPassed := true
	for _, p := range phases {
		status := "PASS"
		if !p.passed() {
			status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
			allPassed = false
		}
		fmt.Fprintf(w, "  %-28s %s\n", p.name, status)
	}

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Fprintf(w, "\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Fprintf(w, "  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Fprintln(w, "\nAll checks passed.")
	} else {
		fmt.Fprintln(w, "\nChecks FAILED.")
	}
	return allPassed
}

func checkIdentity() *phase {
	p := &phase{name: "identity conversions"}
	for _, v := range sampleValues {
		for _, u := range temperature.Units() {
			if got := temperature.Convert(v, u, u); got != v {
				p.errorf("%v %s -> %s = %v", v, u, u, got)
			}
		}
		for _, u := range length.Units() {
			if got := length.Convert(v, u, u); got != v {
				p.errorf("%v %s -> %s = %v", v, u, u, got)
			}
		}
	}
	return p
}

func checkFixedPoints() *phase {
	p := &phase{name: "temperature fixed points"}
	cases := []struct {
		value    float64
		from, to temperature.Unit
		want     float64
	}{
		{0, temperature.Celsius, temperature.Fahrenheit, 32},
		{100, temperature.Celsius, temperature.Fahrenheit, 212},
		{-40, temperature.Celsius, temperature.Fahrenheit, -40},
		{0, temperature.Celsius, temperature.Kelvin, 273.15},
		{0, temperature.Kelvin, temperature.Celsius, -273.15},
		{0, temperature.Kelvin, temperature.Fahrenheit, -459.67},
		{32, temperature.Fahrenheit, temperature.Celsius, 0},
		{212, temperature.Fahrenheit, temperature.Kelvin, 373.15},
	}
	for _, tc := range cases {
		what := fmt.Sprintf("%v %s -> %s", tc.value, tc.from, tc.to)
		p.expect(what, temperature.Convert(tc.value, tc.from, tc.to), tc.want)
	}
	return p
}

func checkLengthReferences() *phase {
	p := &phase{name: "length references"}
	cases := []struct {
		from, to length.Unit
		want     float64
	}{
		{length.Inch, length.Centimeter, 2.54},
		{length.Foot, length.Inch, 12},
		{length.Yard, length.Foot, 3},
		{length.Mile, length.Yard, 1760},
		{length.Mile, length.Meter, 1609.344},
		{length.NauticalMile, length.Meter, 1852},
		{length.Kilometer, length.Meter, 1000},
		{length.Millimeter, length.Micrometer, 1000},
	}
	for _, tc := range cases {
		p.expect(fmt.Sprintf("1 %s -> %s", tc.from, tc.to), length.Convert(1.0, tc.from, tc.to), tc.want)
	}
	return p
}

func checkRoundTrips() *phase {
	p := &phase{name: "round trips"}
	for _, v := range sampleValues {
		for _, a := range temperature.Units() {
			for _, b := range temperature.Units() {
				back := temperature.Convert(temperature.Convert(v, a, b), b, a)
				p.expect(fmt.Sprintf("%v %s -> %s -> %s", v, a, b, a), back, v)
			}
		}
		for _, a := range length.Units() {
			for _, b := range length.Units() {
				back := length.Convert(length.Convert(v, a, b), b, a)
				p.expect(fmt.Sprintf("%v %s -> %s -> %s", v, a, b, a), back, v)
			}
		}
	}
	return p
}
