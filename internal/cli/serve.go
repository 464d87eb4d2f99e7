package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	httpadapter "github.com/couchcryptid/unit-converter/internal/adapter/http"
	"github.com/couchcryptid/unit-converter/internal/buildinfo"
	"github.com/couchcryptid/unit-converter/internal/config"
	"github.com/couchcryptid/unit-converter/internal/converter"
	"github.com/couchcryptid/unit-converter/internal/observability"
	"github.com/couchcryptid/unit-converter/internal/render"
	"github.com/couchcryptid/unit-converter/web"
)

func (c *CLI) serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web converter",
		Long: `Serve the conversion pages, the JSON API, and the health and metrics
endpoints. Settings come from the environment and the optional TOML file
named by CONFIG_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

// serve runs the HTTP server until ctx is cancelled, then drains it within
// cfg.ShutdownTimeout.
func serve(ctx context.Context, cfg *config.Config) error {
	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	engine, err := newEngine(cfg, metrics)
	if err != nil {
		return err
	}
	if err := engine.Preload(render.Pages...); err != nil {
		return fmt.Errorf("load templates: %w", err)
	}

	static := web.Public()
	if cfg.StaticDir != "" {
		static = os.DirFS(cfg.StaticDir)
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, httpadapter.Deps{
		Converter:      converter.NewService(cfg.TemperatureFormula, metrics, logger),
		Renderer:       engine,
		Static:         static,
		Metrics:        metrics,
		RequestTimeout: cfg.RequestTimeout,
	}, logger)

	logger.Info("converter starting",
		"version", buildinfo.Version,
		"formula", cfg.TemperatureFormula.String(),
		"templates", sourceName(cfg.TemplateDir),
		"static", sourceName(cfg.StaticDir),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
		return err
	}

	logger.Info("shutdown complete")
	return nil
}

func newEngine(cfg *config.Config, metrics *observability.Metrics) (*render.Engine, error) {
	opts := []render.Option{
		render.WithGlobals(render.Context{"version": buildinfo.Version}),
		render.WithLoadedGauge(metrics.TemplatesLoaded),
	}
	if cfg.TemplateDir != "" {
		opts = append(opts, render.WithDir(cfg.TemplateDir))
	} else {
		opts = append(opts, render.WithFS(web.Templates()))
	}
	return render.New(opts...)
}

func sourceName(dir string) string {
	if dir == "" {
		return "embedded"
	}
	return dir
}
