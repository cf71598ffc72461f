package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/specialistvlad/stepconfig/internal/cli"
)

// main is the entrypoint for the stepconfig bridge.
func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run encapsulates the main application logic for easier testing and
// returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	err := cli.Execute(context.Background(), args, cli.Options{
		Stdout: stdout,
		Stderr: stderr,
		GOOS:   runtime.GOOS,
	})
	if err == nil {
		return 0
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(stderr, exitErr.Message)
		}
		return exitErr.Code
	}
	fmt.Fprintln(stderr, err)
	return 1
}
