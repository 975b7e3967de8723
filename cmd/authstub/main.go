// Command authstub serves an in-memory stand-in for the auth service on
// AUTHSTUB_ADDRESS (default :8081). Point the API at it with
// AUTH_UPSTREAM_URL=http://localhost:8081.
package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/hatif03/researcher/internal/authstub"
	"github.com/hatif03/researcher/internal/config"
	"github.com/hatif03/researcher/internal/logger"
	"github.com/hatif03/researcher/internal/server"
	"github.com/rs/zerolog"
)

func main() {
	log := logger.NewLogger("authstub", zerolog.DebugLevel, false)

	if _, err := config.LoadEnvFile(); err != nil {
		log.Info().Err(err).Msg("continuing with system environment variables")
	}

	cfg, err := authstub.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	srv := server.New(authstub.New(cfg, log).Handler(), serverConfig(cfg), log)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("auth stub stopped with error")
	}
}

func serverConfig(cfg authstub.Config) config.Server {
	return config.Server{Address: cfg.Address}
}
