// Command httpd runs the civic-issue triage HTTP service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/civicgrid/triage/internal/bootstrap"
	"github.com/civicgrid/triage/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "triage: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yml"
	}

	app, err := bootstrap.New(configPath)
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	defer func() {
		_ = app.Log.Sync()
	}()

	app.Log.Info("starting triage service",
		logger.String("service", app.Config.Service.Name),
		logger.String("version", app.Config.Service.Version),
		logger.Int("port", app.Config.Service.Port))

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Server.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-quit:
		app.Log.Info("shutdown signal received", logger.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), app.Config.Service.ShutdownTimeout)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		return err
	}

	app.Log.Info("triage service stopped")
	return nil
}
