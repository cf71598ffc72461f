package app

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/stepconfig/internal/hclstep"
	"github.com/specialistvlad/stepconfig/internal/luastep"
	"github.com/specialistvlad/stepconfig/internal/resolve"
	"github.com/specialistvlad/stepconfig/internal/transport"
	"github.com/specialistvlad/stepconfig/internal/unit"
)

// App encapsulates one bridge invocation: its logger, the invocation-local
// search path and unit registry, and the host channel.
type App struct {
	config   *Config
	logger   *slog.Logger
	search   *resolve.SearchPath
	registry *unit.Registry
	loader   *unit.Dispatcher
	channel  transport.Channel
}

// NewApp wires an App for cfg. Without explicit loaders the Lua and HCL
// step loaders are used.
func NewApp(cfg *Config, loaders ...unit.Loader) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, cfg.Stderr).With("run_id", uuid.NewString())
	logger.Debug("Logger configured successfully.")

	if len(loaders) == 0 {
		loaders = []unit.Loader{luastep.NewLoader(), hclstep.NewLoader()}
	}

	search := resolve.NewSearchPath()
	registry := unit.NewRegistry()
	channel := transport.Select(cfg.GOOS, cfg.Stdout, cfg.Environ)
	logger.Debug("Host channel selected.", "goos", cfg.GOOS, "channel", channel.Name())

	return &App{
		config:   cfg,
		logger:   logger,
		search:   search,
		registry: registry,
		loader:   unit.NewDispatcher(registry, search, loaders...),
		channel:  channel,
	}
}

// Registry returns the invocation's unit registry. This is primarily for
// testing.
func (a *App) Registry() *unit.Registry {
	return a.registry
}

// SearchPath returns the invocation's lookup roots. This is primarily for
// testing.
func (a *App) SearchPath() *resolve.SearchPath {
	return a.search
}
