package main

import (
	"context"
	"errors"
	"fmt"
	"lsbmark/internal/cli"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	os.Exit(run())
}

func run() int {
	// subscribe to system signals, long running commands shut down cleanly when the context is cancelled
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if profErr := cli.StopProfilers(); profErr != nil {
		fmt.Fprintf(os.Stderr, "Error writing profiles: %v\n", profErr)
	}

	switch {
	case err == nil:
		return 0
	case errors.Is(err, cli.ErrNoWatermark):
		return cli.ExitNoWatermark
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
}
