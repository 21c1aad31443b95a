// Package appshell wires a command runner to the process: signals, argv and
// the exit status.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the entry point of a command tree.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// ExitInterrupted is returned when the context was cancelled under a run
// that otherwise reported success.
const ExitInterrupted = 130

// Run calls run with argv, defaulting to help when argv is empty.
func Run(ctx context.Context, argv []string, stdout, stderr io.Writer, run RunFunc) int {
	if len(argv) == 0 {
		argv = []string{"--help"}
	}
	code := run(ctx, argv, stdout, stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == 0 {
		code = ExitInterrupted
	}
	return code
}

// Main runs the command under SIGINT/SIGTERM and exits the process.
func Main(run RunFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := Run(ctx, os.Args[1:], os.Stdout, os.Stderr, run)
	stop()
	os.Exit(code)
}
