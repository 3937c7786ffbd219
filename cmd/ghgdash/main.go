// Command ghgdash is a terminal dashboard for per-country greenhouse gas
// statistics.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rshade/ghgdash/internal/cli"
	"github.com/rshade/ghgdash/pkg/version"
)

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCmd(version.GetVersion())
	root.SetOut(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return cli.ExitCodeFor(err)
	}
	return cli.ExitOK
}

func main() {
	os.Exit(run())
}
