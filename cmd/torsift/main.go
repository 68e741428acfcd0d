package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"torsift/cli"
)

func main() {

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	err := cli.NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "torsift: %v\n", err)
		os.Exit(1)
	}
}
