package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hatif03/researcher/internal/app"
	"github.com/hatif03/researcher/internal/authproxy"
	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
	"github.com/hatif03/researcher/internal/server"
	"github.com/rs/zerolog"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	if err := run(); err != nil {
		logger.NewLogger("api", zerolog.InfoLevel, false).
			Fatal().Err(err).Msg("api stopped with error")
	}
}

func run() error {
	envFile, envErr := config.LoadEnvFile()

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}

	log := logger.NewLogger("api", cfg.Log.ZerologLevel(), cfg.Log.PrettyOutput())

	switch {
	case errors.Is(envErr, config.ErrEnvFileNotFound):
		log.Info().Str("file", envFile).Msg("no env file found, using system environment variables")
	case envErr != nil:
		log.Warn().Err(envErr).Msg("error loading env file")
	default:
		log.Info().Str("file", envFile).Msg("env file loaded")
	}

	if len(cfg.CORS.AllowedOrigins) == 0 {
		log.Warn().Msg("CORS allow-list is empty, no cross-origin caller will be granted access")
	}
	log.Debug().Any("config", cfg).Msg("received configs")

	auth, err := authproxy.New(cfg.Auth, app.AuthPrefix, log)
	if err != nil {
		return fmt.Errorf("error creating auth router: %w", err)
	}

	application, err := app.New(cfg, auth, log)
	if err != nil {
		return fmt.Errorf("error creating application: %w", err)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return server.New(application.Handler(), cfg.Server, log).Run(ctx)
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
