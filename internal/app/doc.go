// Package app contains the bridge pipeline: resolve the step path, load
// the step, extract its config and send it to the host. It is decoupled
// from the command line so tests can drive it with their own writers and
// environment.
package app
