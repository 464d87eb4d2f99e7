package render_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/unit-converter/internal/render"
	"github.com/couchcryptid/unit-converter/web"
)

func newEmbeddedEngine(t *testing.T, opts ...render.Option) *render.Engine {
	t.Helper()
	opts = append([]render.Option{
		render.WithFS(web.Templates()),
		render.WithGlobals(render.Context{"version": "test"}),
	}, opts...)
	e, err := render.New(opts...)
	require.NoError(t, err)
	return e
}

func TestEngine_RequiresSource(t *testing.T) {
	_, err := render.New()
	require.Error(t, err)
}

func TestEngine_RenderIndex(t *testing.T) {
	e := newEmbeddedEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, render.PageIndex, render.Context{
		"quantities": []string{"temperature", "length"},
	}))

	body := buf.String()
	assert.Contains(t, body, `href="/temperature/"`)
	assert.Contains(t, body, `href="/length/"`)
	assert.Contains(t, body, "unit-converter test")
}

func TestEngine_RenderResult(t *testing.T) {
	e := newEmbeddedEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, render.PageResult, render.Context{
		"quantity":    "temperature",
		"from":        "celsius",
		"to":          "fahrenheit",
		"from_symbol": "°C",
		"to_symbol":   "°F",
		"value":       "100",
		"result":      "212",
		"units":       []map[string]string{{"Label": "celsius", "Symbol": "°C"}},
	}))

	body := buf.String()
	assert.Contains(t, body, "100</span> celsius are <span class=\"converted\">212</span> fahrenheit")
	assert.NotContains(t, body, `class="factor"`)
}

func TestEngine_AutoescapesInput(t *testing.T) {
	e := newEmbeddedEngine(t)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, render.PageError, render.Context{
		"status":      400,
		"status_text": "Bad Request",
		"message":     "<script>alert(1)</script>",
	}))

	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}

func TestEngine_ReadinessAfterPreload(t *testing.T) {
	gauge := prometheus.NewGauge(prometheus.GaugeOpts{Name: "templates_loaded"})
	e := newEmbeddedEngine(t, render.WithLoadedGauge(gauge))

	require.Error(t, e.CheckReadiness(context.Background()))

	require.NoError(t, e.Preload(render.Pages...))
	require.NoError(t, e.CheckReadiness(context.Background()))
	assert.Equal(t, float64(len(render.Pages)), testutil.ToFloat64(gauge))
}

func TestEngine_PreloadReportsSyntaxErrors(t *testing.T) {
	files := fstest.MapFS{
		"broken.html": {Data: []byte("{% if %}never closed")},
	}
	e, err := render.New(render.WithFS(files))
	require.NoError(t, err)

	err = e.Preload("broken.html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken.html")
}

func TestEngine_MissingTemplate(t *testing.T) {
	e := newEmbeddedEngine(t)

	var buf bytes.Buffer
	err := e.Render(&buf, "nope.html", nil)
	require.Error(t, err)
	assert.Empty(t, buf.String())
}

func TestEngine_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.html"), []byte("hello {{ name }}"), 0o600))

	e, err := render.New(render.WithDir(dir))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, "hello.html", render.Context{"name": "kelvin"}))
	assert.Equal(t, "hello kelvin", buf.String())
}
