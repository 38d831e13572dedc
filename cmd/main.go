package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/desertthunder/setlistsync/internal/shared"
	"github.com/urfave/cli/v3"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func init() {
	// -v is taken by --verbose
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "print the version"}
}

func main() {
	logger := shared.NewLogger(nil)
	runner := NewRunner(RunnerOpts{Logger: logger})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := runner.app().Run(ctx, os.Args)
	stop()
	runner.Close()

	if err != nil {
		logger.Fatalf("application error: %v", err)
	}
}
