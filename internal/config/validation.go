package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"
)

// normalize trims list entries coming from env or YAML, where "a, b" would
// otherwise keep the leading space, and drops empty ones.
func (cfg *Config) normalize() {
	origins := cfg.CORS.AllowedOrigins[:0]
	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	cfg.CORS.AllowedOrigins = origins
}

func (cfg *Config) validate() error {
	var errs []error

	if cfg.Server.Address == "" {
		errs = append(errs, fmt.Errorf("%w: empty address", ErrInvalidServerConfig))
	}
	if cfg.Server.ReadTimeout < 0 || cfg.Server.WriteTimeout < 0 ||
		cfg.Server.IdleTimeout < 0 || cfg.Server.ShutdownTimeout < 0 {
		errs = append(errs, fmt.Errorf("%w: negative timeout", ErrInvalidServerConfig))
	}

	for _, origin := range cfg.CORS.AllowedOrigins {
		if origin == "" || (origin != "*" && strings.HasSuffix(origin, "/")) {
			errs = append(errs, fmt.Errorf("%w: origin %q", ErrInvalidCORSConfig, origin))
		}
	}

	if raw := cfg.Auth.UpstreamURL; raw != "" {
		u, err := url.Parse(raw)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("%w: upstream url %q", ErrInvalidAuthConfig, raw))
		}
	}

	if _, err := zerolog.ParseLevel(cfg.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("%w: %w", ErrInvalidLogConfig, err))
	}

	return errors.Join(errs...)
}
