package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/oceanticsports/oceantic-admin/internal/buildinfo"
	"github.com/oceanticsports/oceantic-admin/internal/client/cli"
	"github.com/oceanticsports/oceantic-admin/internal/client/config"
	"github.com/oceanticsports/oceantic-admin/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.LoadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	app, err := cli.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer app.Close()

	app.Run(ctx)
}
