// Package cli is responsible for parsing command-line arguments and
// handling process-level concerns like exit codes. It turns the single
// positional step path into an app.Config and maps failures onto the one
// diagnostic line the host expects.
package cli
