package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"taskswitch/internal/config"
	"taskswitch/internal/mcp"
)

func runMCP(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "mcp takes no arguments")
		return 2
	}

	manager, _, log, cleanup, err := setup()
	if err != nil {
		return fail(err)
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := mcp.NewServer(manager, log)
	if err := server.Run(ctx); err != nil && ctx.Err() == nil {
		return fail(err)
	}
	return 0
}

func runConfig(args []string) int {
	if len(args) > 0 {
		fmt.Fprintln(os.Stderr, "config takes no arguments")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		return fail(err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fail(err)
	}
	os.Stdout.Write(data)
	return 0
}
