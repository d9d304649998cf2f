package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"lastmile/cmd"

	"github.com/labstack/gommon/log"
)

func main() {
	if err := cmd.LoadEnv(".env"); err != nil {
		log.Fatal(err)
	}
	cfg := cmd.DefaultConfig()
	if err := cmd.ApplyEnv(&cfg, nil); err != nil {
		log.Fatalf("invalid environment: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCommand(&cfg).ExecuteContext(ctx)
	stop()
	if err != nil {
		log.Fatal(err)
	}
}
