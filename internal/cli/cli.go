package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/specialistvlad/stepconfig/internal/app"
	"github.com/specialistvlad/stepconfig/internal/bridgeerr"
	"github.com/spf13/cobra"
)

// DiagnosticPrefix starts the single stderr line printed on failure.
const DiagnosticPrefix = "Error running step module:"

// ExitError is a custom error type that includes a specific exit code.
// An empty Message means nothing should be printed.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Options carries the process surroundings into the command so tests can
// replace them.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// Environ replaces the process environment when non-nil.
	Environ map[string]string
	// GOOS overrides the host platform used to pick the transport.
	GOOS string
}

// NewCommand builds the root command. It takes exactly one positional
// argument, the step file, and no flags.
func NewCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "stepconfig STEP_FILE",
		Short: "Load a step file and send its config to the parent process",
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) < 1 {
				return bridgeerr.ErrUsage
			}
			return nil
		},
		DisableFlagParsing: true,
		SilenceErrors:      true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := app.LoadSettings(opts.Environ)
			cfg, err := app.NewConfig(app.Config{
				StepPath: args[0],
				Settings: settings,
				GOOS:     opts.GOOS,
				Environ:  opts.Environ,
				Stdout:   opts.Stdout,
				Stderr:   opts.Stderr,
			})
			if err != nil {
				return err
			}
			return app.NewApp(cfg).Run(cmd.Context())
		},
	}
}

// Execute runs the command for args and converts any failure into an
// ExitError.
func Execute(ctx context.Context, args []string, opts Options) error {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	cmd := NewCommand(opts)
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, bridgeerr.ErrUsage) {
		return &ExitError{Code: 1}
	}
	msg := strings.ReplaceAll(fmt.Sprintf("%s %v", DiagnosticPrefix, err), "\n", " ")
	return &ExitError{Code: 1, Message: msg}
}
