package transport

import (
	"context"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/specialistvlad/stepconfig/internal/ctxlog"
)

// ChannelFDVar names the environment variable holding the descriptor of
// the host's IPC channel.
const ChannelFDVar = "NODE_CHANNEL_FD"

type channelEnv struct {
	FD *int `env:"NODE_CHANNEL_FD"`
}

// FDChannel writes to the numbered descriptor the host opened for us. The
// descriptor is looked up on every Write, not at construction.
type FDChannel struct {
	environ map[string]string
}

// NewFDChannel returns a descriptor channel reading environ, or the
// process environment when environ is nil.
func NewFDChannel(environ map[string]string) *FDChannel {
	return &FDChannel{environ: environ}
}

// Name implements Channel.
func (*FDChannel) Name() string { return "fd" }

// Descriptor parses the channel descriptor from the environment.
func (c *FDChannel) Descriptor() (int, error) {
	var cfg channelEnv
	opts := env.Options{}
	if c.environ != nil {
		opts.Environment = c.environ
	}
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", bridgeerr.ErrTransportConfig, ChannelFDVar, err)
	}
	if cfg.FD == nil {
		return 0, fmt.Errorf("%w: %s is not set", bridgeerr.ErrTransportConfig, ChannelFDVar)
	}
	if *cfg.FD < 0 {
		return 0, fmt.Errorf("%w: %s=%d is not a valid descriptor", bridgeerr.ErrTransportConfig, ChannelFDVar, *cfg.FD)
	}
	return *cfg.FD, nil
}

// Write implements Channel. A short write is logged, not retried.
func (c *FDChannel) Write(ctx context.Context, msg []byte) error {
	fd, err := c.Descriptor()
	if err != nil {
		return err
	}
	n, err := writeFD(fd, msg)
	if err != nil {
		return fmt.Errorf("write to fd %d: %w", fd, err)
	}
	if n < len(msg) {
		ctxlog.FromContext(ctx).Warn("Short write to host channel.", "fd", fd, "written", n, "bytes", len(msg))
	}
	return nil
}
