package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/zucenko/pathviz/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := cli.NewRootCmd(visualize).ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
