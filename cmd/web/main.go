package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/gophauth/internal/buildinfo"
	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/client/form"
	"github.com/dmitrijs2005/gophauth/internal/client/web"
	"github.com/dmitrijs2005/gophauth/internal/client/workflow"
	"github.com/dmitrijs2005/gophauth/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.New(os.Stderr, "json", cfg.LogLevel)

	verifier, closeFn, err := client.NewBackend(cfg.Backend, cfg.ServerEndpointAddr, cfg.CAFile, cfg.DemoDelay)
	if err != nil {
		log.Fatalf("%v", err)
	}
	defer func() { _ = closeFn() }()

	mode, _ := form.ParseMode(cfg.StartMode)
	h := web.NewHandler(verifier, workflow.Options{
		RequestTimeout: cfg.RequestTimeout,
		RetryAttempts:  cfg.RetryAttempts,
		RetryDelay:     cfg.RetryDelay,
		Logger:         logger,
	}, mode, logger)

	if err := web.Serve(ctx, cfg.WebAddr, h, logger); err != nil {
		logger.Error(ctx, "web server stopped", "error", err)
	}

}
