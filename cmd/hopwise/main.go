// Command hopwise answers travel questions across rideshare and restaurant
// providers.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/hopwise/hopwise/internal/adapters/driving/cli"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	cli.SetVersion(version)
	err := cli.Execute(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
