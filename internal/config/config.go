package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	sharedcfg "github.com/couchcryptid/storm-data-shared/config"

	"github.com/couchcryptid/unit-converter/internal/domain/temperature"
)

// Config holds all service settings.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration

	// Empty means the assets embedded in the binary.
	TemplateDir string
	StaticDir   string

	TemperatureFormula temperature.Formula
}

// fileConfig is the optional TOML file named by CONFIG_FILE. Every key
// mirrors an environment variable; the environment wins when both are set.
type fileConfig struct {
	HTTPAddr           string `toml:"http_addr"`
	LogLevel           string `toml:"log_level"`
	LogFormat          string `toml:"log_format"`
	ShutdownTimeout    string `toml:"shutdown_timeout"`
	RequestTimeout     string `toml:"request_timeout"`
	TemplateDir        string `toml:"template_dir"`
	StaticDir          string `toml:"static_dir"`
	TemperatureFormula string `toml:"temperature_formula"`
}

// Load reads configuration from CONFIG_FILE (if set) and environment
// variables, applying defaults where unset.
func Load() (*Config, error) {
	var file fileConfig
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &file); err != nil {
			return nil, fmt.Errorf("read CONFIG_FILE %s: %w", path, err)
		}
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}
	if file.ShutdownTimeout != "" && os.Getenv("SHUTDOWN_TIMEOUT") == "" {
		shutdownTimeout, err = time.ParseDuration(file.ShutdownTimeout)
		if err != nil || shutdownTimeout <= 0 {
			return nil, errors.New("invalid SHUTDOWN_TIMEOUT in CONFIG_FILE")
		}
	}

	requestTimeout, err := time.ParseDuration(envOrFile("REQUEST_TIMEOUT", file.RequestTimeout, "5s"))
	if err != nil || requestTimeout <= 0 {
		return nil, errors.New("invalid REQUEST_TIMEOUT")
	}

	formula, ok := temperature.ParseFormula(envOrFile("TEMPERATURE_FORMULA", file.TemperatureFormula, "exact"))
	if !ok {
		return nil, errors.New("invalid TEMPERATURE_FORMULA: want exact or legacy")
	}

	cfg := &Config{
		HTTPAddr:           envOrFile("HTTP_ADDR", file.HTTPAddr, ":8080"),
		LogLevel:           envOrFile("LOG_LEVEL", file.LogLevel, "info"),
		LogFormat:          envOrFile("LOG_FORMAT", file.LogFormat, "json"),
		ShutdownTimeout:    shutdownTimeout,
		RequestTimeout:     requestTimeout,
		TemplateDir:        envOrFile("TEMPLATE_DIR", file.TemplateDir, ""),
		StaticDir:          envOrFile("STATIC_DIR", file.StaticDir, ""),
		TemperatureFormula: formula,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, errors.New("invalid LOG_LEVEL: want debug, info, warn or error")
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, errors.New("invalid LOG_FORMAT: want json or text")
	}
	if err := checkDir("TEMPLATE_DIR", cfg.TemplateDir); err != nil {
		return nil, err
	}
	if err := checkDir("STATIC_DIR", cfg.StaticDir); err != nil {
		return nil, err
	}

	return cfg, nil
}

// envOrFile returns the env var if set, else the file value, else def.
func envOrFile(key, fileValue, def string) string {
	if fileValue != "" {
		def = fileValue
	}
	return sharedcfg.EnvOrDefault(key, def)
}

func checkDir(key, dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("invalid %s: %s is not a directory", key, dir)
	}
	return nil
}
