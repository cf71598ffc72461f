package app

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Settings are the tunables read from the environment.
type Settings struct {
	LogLevel  string `env:"STEPCONFIG_LOG_LEVEL" envDefault:"error"`
	LogFormat string `env:"STEPCONFIG_LOG_FORMAT" envDefault:"text"`
}

// LoadSettings reads Settings from environ, or from the process
// environment when environ is nil. Unknown values fall back to the
// defaults: the host only looks at the exit code, so a typo in a logging
// knob must not fail the run.
func LoadSettings(environ map[string]string) Settings {
	var s Settings
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&s, opts); err != nil {
		s = Settings{}
	}

	s.LogLevel = strings.ToLower(s.LogLevel)
	switch s.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		s.LogLevel = "error"
	}

	s.LogFormat = strings.ToLower(s.LogFormat)
	if s.LogFormat != "text" && s.LogFormat != "json" {
		s.LogFormat = "text"
	}
	return s
}

// Config holds everything one bridge invocation needs.
type Config struct {
	// StepPath is the step file handed over by the host.
	StepPath string

	Settings

	// GOOS selects the transport; defaults to runtime.GOOS.
	GOOS string
	// Environ overrides the process environment for the transport.
	Environ map[string]string

	Stdout io.Writer
	Stderr io.Writer
}

// NewConfig validates cfg and fills in defaults. The step path is not
// checked here; an empty one is reported by the resolver like any other
// bad path.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.GOOS == "" {
		cfg.GOOS = runtime.GOOS
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "error"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("unknown log level %q", cfg.LogLevel)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return &cfg, nil
}
