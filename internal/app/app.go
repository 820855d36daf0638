package app

import (
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/specialistvlad/timerwire/internal/config"
	"github.com/specialistvlad/timerwire/internal/deployment"
	"github.com/specialistvlad/timerwire/internal/inmemorytopology"
	"github.com/specialistvlad/timerwire/internal/metrics"
	"github.com/specialistvlad/timerwire/internal/provider"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	config    *Config
	loader    config.Loader
	providers *provider.Registry
	metrics   *metrics.Metrics
	target    *inmemorytopology.Store

	units      []*deployment.Unit
	ready      atomic.Bool
	httpServer *http.Server
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own logger, provider registry and
// installation target. Passing modules replaces the built-in providers and
// registers them regardless of Config.Distributable.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...provider.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	reg := provider.New()
	if len(modules) == 0 && appConfig.Distributable {
		modules = coreProviders
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("Timer provider modules registered.", "count", len(modules), "names", reg.Names())

	return &App{
		outW:      outW,
		logger:    logger,
		config:    appConfig,
		loader:    loader,
		providers: reg,
		metrics:   metrics.New(),
		target:    inmemorytopology.New(),
	}
}

// Target returns the installation target. This is primarily for testing.
func (a *App) Target() *inmemorytopology.Store {
	return a.target
}

// Units returns the units processed by the last Run.
func (a *App) Units() []*deployment.Unit {
	return a.units
}

// Metrics returns the application's collectors.
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}
