package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"orderreg/internal/catalog"
	"orderreg/internal/config"
	"orderreg/internal/listener"
	"orderreg/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	must(err)

	items, err := catalog.LoadFile(cfg.CatalogPath)
	must(err)

	pipe := pipeline.New(items, cfg)
	svc := listener.NewService(pipe, cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	must(svc.Run(ctx))
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
