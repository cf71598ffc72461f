// Package extract reads the config binding off a loaded step and strips
// the parts the host has no use for.
package extract

import (
	"context"
	"fmt"

	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
	"github.com/specialistvlad/stepconfig/internal/unit"
)

const (
	// ConfigBinding is the top-level name every step must define.
	ConfigBinding = "config"
	// MiddlewareKey is dropped from mapping configs before transmission.
	MiddlewareKey = "middleware"
)

// Config returns the step's config value with a top-level middleware entry
// removed. Non-mapping values pass through untouched.
func Config(ctx context.Context, u unit.Unit) (any, error) {
	logger := ctxlog.FromContext(ctx)

	cfg, ok := u.Lookup(ConfigBinding)
	if !ok {
		return nil, fmt.Errorf("%w: no '%s' found in module %s", bridgeerr.ErrConfigMissing, ConfigBinding, u.Identity().Path)
	}

	m, isMap := cfg.(map[string]any)
	if !isMap {
		logger.Debug("Config is not a mapping, passing through.", "type", fmt.Sprintf("%T", cfg))
		return cfg, nil
	}
	if _, has := m[MiddlewareKey]; !has {
		return m, nil
	}

	stripped := make(map[string]any, len(m)-1)
	for k, v := range m {
		if k != MiddlewareKey {
			stripped[k] = v
		}
	}
	logger.Debug("Middleware removed from config.")
	return stripped, nil
}
