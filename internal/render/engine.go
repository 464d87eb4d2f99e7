// Package render renders HTML pages from pongo2 templates.
package render

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/prometheus/client_golang/prometheus"
)

// Page template names.
const (
	PageIndex    = "index.html"
	PageQuantity = "quantity.html"
	PageResult   = "result.html"
	PageError    = "error.html"
)

// Pages lists every template the site renders directly.
var Pages = []string{PageIndex, PageQuantity, PageResult, PageError}

// Context is the data handed to a template.
type Context = pongo2.Context

// Option configures an Engine.
type Option func(*config)

type config struct {
	dir     string
	files   fs.FS
	globals Context
	loaded  prometheus.Gauge
}

// WithDir loads templates from a directory on disk. It takes precedence over WithFS.
func WithDir(dir string) Option {
	return func(c *config) { c.dir = dir }
}

// WithFS loads templates from an fs.FS, typically the embedded assets.
func WithFS(files fs.FS) Option {
	return func(c *config) { c.files = files }
}

// WithGlobals seeds values available to every template.
func WithGlobals(globals Context) Option {
	return func(c *config) { c.globals = globals }
}

// WithLoadedGauge reports the number of compiled templates.
func WithLoadedGauge(g prometheus.Gauge) Option {
	return func(c *config) { c.loaded = g }
}

// Engine compiles templates on first use and caches them.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
	loaded    prometheus.Gauge
}

// New creates an Engine. One of WithDir or WithFS is required.
func New(opts ...Option) (*Engine, error) {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	var loader pongo2.TemplateLoader
	switch {
	case cfg.dir != "":
		l, err := pongo2.NewLocalFileSystemLoader(cfg.dir)
		if err != nil {
			return nil, fmt.Errorf("render: template dir: %w", err)
		}
		loader = l
	case cfg.files != nil:
		loader = pongo2.NewFSLoader(cfg.files)
	default:
		return nil, errors.New("render: need a template dir or fs.FS")
	}

	set := pongo2.NewSet("converter", loader)
	if cfg.globals != nil {
		if set.Globals == nil {
			set.Globals = make(pongo2.Context)
		}
		set.Globals.Update(cfg.globals)
	}

	return &Engine{
		set:       set,
		templates: make(map[string]*pongo2.Template),
		loaded:    cfg.loaded,
	}, nil
}

// Preload compiles the named templates so syntax errors surface at startup.
func (e *Engine) Preload(names ...string) error {
	for _, name := range names {
		if _, err := e.template(name); err != nil {
			return err
		}
	}
	return nil
}

// Render executes the named template into w. Nothing is written on error.
func (e *Engine) Render(w io.Writer, name string, data Context) error {
	tmpl, err := e.template(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteWriter(data, w); err != nil {
		return fmt.Errorf("render: execute %q: %w", name, err)
	}
	return nil
}

// CheckReadiness reports ready once every page template has compiled.
func (e *Engine) CheckReadiness(_ context.Context) error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, name := range Pages {
		if _, ok := e.templates[name]; !ok {
			return fmt.Errorf("template %q not loaded", name)
		}
	}
	return nil
}

func (e *Engine) template(name string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[name]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[name]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(name)
	if err != nil {
		return nil, fmt.Errorf("render: load %q: %w", name, err)
	}
	e.templates[name] = tmpl
	if e.loaded != nil {
		e.loaded.Set(float64(len(e.templates)))
	}
	return tmpl, nil
}
