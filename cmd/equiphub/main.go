// Command equiphub runs the equipment rental backend.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/skillsenselab/equiphub/internal/app"
	"github.com/skillsenselab/equiphub/internal/config"
	"github.com/skillsenselab/equiphub/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "equiphub: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile = flag.String("config", "", "path to config.yml")
		envFile    = flag.String("env-file", "", "path to .env file")
	)
	flag.Parse()

	var opts []config.LoaderOption
	if *configFile != "" {
		opts = append(opts, config.WithConfigFile(*configFile))
	}
	if *envFile != "" {
		opts = append(opts, config.WithEnvFile(*envFile))
	}
	cfg, err := config.Load(opts...)
	if err != nil {
		return err
	}

	log := logger.New(&cfg.Logging, cfg.Name)
	logger.SetGlobalLogger(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		return err
	}
	if err := application.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	stop()

	// Shutdown gets a fresh context: the signal context is already done.
	if err := application.Stop(context.Background()); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Service stopped")
	return nil
}
