package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	adapters "github.com/pivvenit/acf-pro-installer/internal/domain-adapters/gateways"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	root := newRootCommand(adapters.NewOSEnvironment())
	err := root.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
