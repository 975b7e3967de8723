// Package authstub is an in-memory stand-in for the external authentication
// service. It speaks the same contract under /api/auth (register, token, me)
// so the API shell can be run and tested end to end without the real one.
//
// Nothing is persisted; restarting the stub forgets every user.
package authstub

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hatif03/researcher/internal/logger"
)

// Config holds stub settings, read from AUTHSTUB_* variables.
type Config struct {
	Address  string        `env:"ADDRESS" envDefault:":8081"`
	SignKey  string        `env:"SIGN_KEY" envDefault:"YOUR_SECRET_KEY_HERE"`
	TokenTTL time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
}

// LoadConfig parses AUTHSTUB_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "AUTHSTUB_"}); err != nil {
		return Config{}, fmt.Errorf("error getting authstub env configs: %w", err)
	}
	if cfg.SignKey == "" {
		return Config{}, errEmptySignKey
	}
	return cfg, nil
}

var errEmptySignKey = errors.New("empty token sign key")

// Service is the stub auth service.
type Service struct {
	users    *userStore
	signKey  []byte
	tokenTTL time.Duration
	now      func() time.Time
	logger   *logger.Logger
}

// New creates a stub with an empty user store.
func New(cfg Config, log *logger.Logger) *Service {
	return &Service{
		users:    newUserStore(),
		signKey:  []byte(cfg.SignKey),
		tokenTTL: cfg.TokenTTL,
		now:      time.Now,
		logger:   log,
	}
}

// Handler returns the router serving /api/auth.
func (s *Service) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", s.register)
		r.Post("/token", s.token)
		r.With(s.authMiddleware).Get("/me", s.me)
	})

	return router
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", errMissingAuthorization
	}

	parts := strings.Split(header, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", errInvalidAuthorization
	}

	return parts[1], nil
}

var (
	errMissingAuthorization = errors.New("missing Authorization header")
	errInvalidAuthorization = errors.New("invalid Authorization header")
)
