// Package appshell adapts a RunContext-style entry point to a process:
// signals become context cancellation and the result becomes the exit code.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"
)

// RunFunc is the shape of app.RunContext.
type RunFunc func(ctx context.Context, argv []string, stdout, stderr io.Writer) int

// Main runs run with os.Args and exits. The first SIGINT/SIGTERM cancels the
// context so in-flight sequences can drain; a second one exits immediately.
func Main(run RunFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		cancel()
		<-sigs
		os.Exit(130)
	}()

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := exitCode(ctx, run(ctx, argv, os.Stdout, os.Stderr))
	signal.Stop(sigs)
	cancel()
	os.Exit(code)
}

// exitCode reports 130 for a run that was interrupted but still claimed
// success.
func exitCode(ctx context.Context, code int) int {
	if ctx.Err() != nil && code == 0 {
		return 130
	}
	return code
}
