package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/unit-converter/internal/buildinfo"
	"github.com/couchcryptid/unit-converter/internal/converter"
	"github.com/couchcryptid/unit-converter/internal/domain"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := New(io.Discard, LogInfo).RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "convert", "check"})
}

func TestRootCommand_Version(t *testing.T) {
	out, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "converter version "+buildinfo.Version)
}

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"celsius to fahrenheit", []string{"temperature", "100", "celsius", "fahrenheit"}, "100 celsius are 212 fahrenheit"},
		{"aliases", []string{"temperature", "0", "C", "F"}, "0 celsius are 32 fahrenheit"},
		{"kelvin in single precision", []string{"temperature", "0", "k", "c", "--float32"}, "0 kelvin are -273.15 celsius"},
		{"length", []string{"length", "2", "km", "m"}, "2 kilometer are 2000 meter"},
		{"length in single precision", []string{"length", "1", "nmi", "m", "--float32"}, "1 nautical-mile are 1852 meter"},
		{"legacy formula", []string{"temperature", "212", "fahrenheit", "celsius", "--legacy"}, "212 fahrenheit are 99"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, append([]string{"convert"}, tt.args...)...)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(out, tt.want), "got %q", out)
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"bad value", []string{"temperature", "warm", "c", "f"}, domain.ErrInvalidValue},
		{"infinite value", []string{"length", "Inf", "m", "ft"}, domain.ErrInvalidValue},
		{"unknown unit", []string{"length", "1", "furlong", "m"}, domain.ErrUnknownUnit},
		{"unknown quantity", []string{"mass", "1", "kg", "lb"}, converter.ErrUnknownQuantity},
		{"overflow", []string{"length", "1e308", "m", "um"}, domain.ErrOutOfRange},
		{"single precision overflow", []string{"length", "1e38", "km", "mm", "--float32"}, domain.ErrOutOfRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"convert"}, tt.args...)...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConvert_RequiresFourArgs(t *testing.T) {
	_, err := execute(t, "convert", "temperature", "1", "c")
	require.Error(t, err)
}

func TestCheck_Passes(t *testing.T) {
	out, err := execute(t, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "temperature fixed points")
	assert.Contains(t, out, "All checks passed.")
	assert.NotContains(t, out, "FAIL")
}

func TestReport_ListsFailures(t *testing.T) {
	ok := &phase{name: "fine"}
	bad := &phase{name: "broken"}
	bad.expect("1 + 1", 3, 2)

	var buf bytes.Buffer
	assert.False(t, report(&buf, []*phase{ok, bad}))

	out := buf.String()
	assert.Contains(t, out, "FAIL (1 errors)")
	assert.Contains(t, out, "--- broken ---")
	assert.Contains(t, out, "[1] 1 + 1 = 3, want 2")
	assert.Contains(t, out, "Checks FAILED.")
}

func TestPhase_ExpectTolerance(t *testing.T) {
	p := &phase{name: "tolerance"}
	p.expect("tiny drift", 1852.0000000000002, 1852)
	p.expect("near zero", 1e-12, 0)
	assert.True(t, p.passed())

	p.expect("real error", 1.001, 1)
	assert.False(t, p.passed())
}

func TestServe_RejectsBadConfig(t *testing.T) {
	t.Setenv("LOG_FORMAT", "xml")
	_, err := execute(t, "serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
