package app

import (
	"context"

	"github.com/specialistvlad/stepconfig/internal/ctxlog"
	"github.com/specialistvlad/stepconfig/internal/extract"
	"github.com/specialistvlad/stepconfig/internal/resolve"
	"github.com/specialistvlad/stepconfig/internal/transport"
)

// Run executes the pipeline once: Resolved, Loaded, Extracted, Sent. The
// first failing stage ends the run; nothing is retried.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "path", a.config.StepPath)

	id, err := resolve.Resolve(ctx, a.config.StepPath, a.search)
	if err != nil {
		return err
	}
	ctx = ctxlog.With(ctx, "module", id.Module)
	a.logger.Debug("State: resolved.", "module", id.Module, "package", id.Package)
	if err := ctx.Err(); err != nil {
		return err
	}

	u, err := a.loader.Load(ctx, id)
	if err != nil {
		return err
	}
	a.logger.Debug("State: loaded.", "module", id.Module)
	if err := ctx.Err(); err != nil {
		return err
	}

	cfg, err := extract.Config(ctx, u)
	if err != nil {
		return err
	}
	a.logger.Debug("State: extracted.", "module", id.Module)

	if err := transport.Send(ctx, a.channel, cfg); err != nil {
		return err
	}
	a.logger.Info("Step config sent.", "module", id.Module, "channel", a.channel.Name())
	return nil
}
