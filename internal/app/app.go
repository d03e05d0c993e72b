package app

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vk/gridbench/internal/config"
	"github.com/vk/gridbench/internal/hcl"
	"github.com/vk/gridbench/internal/yamlcfg"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	stdout io.Writer
	logger *slog.Logger
	config *Config
	loader config.Loader
	now    func() time.Time

	httpServer *http.Server
	healthAddr string
}

// DefaultLoader reads HCL, YAML and JSON profiles.
func DefaultLoader() config.Loader {
	return config.MultiLoader{hcl.NewLoader(), yamlcfg.NewLoader(), config.NewJSONLoader()}
}

// NewApp is the constructor for the main application. stdout receives the
// live copy of every run log line and the aggregate summaries; stderr
// receives structured logs. A nil loader means DefaultLoader.
func NewApp(stdout, stderr io.Writer, cfg *Config, loader config.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	logger.Debug("Logger configured successfully.")

	if loader == nil {
		loader = DefaultLoader()
	}

	return &App{
		stdout: stdout,
		logger: logger,
		config: cfg,
		loader: loader,
		now:    time.Now,
	}
}

// Config returns the application's config, including any merged profile.
// This is primarily for testing.
func (a *App) Config() *Config {
	return a.config
}
