package config

import (
	"time"

	"github.com/rs/zerolog"
)

// Config is the top-level configuration container.
//
// Struct tags:
//   - envPrefix / env: environment variable mapping (caarlos0/env).
//   - yaml: key in the optional YAML configuration file.
//
// Booleans are pointers so that an explicit false from a higher-priority
// source is not mistaken for "unset" during the merge.
type Config struct {
	// App holds metadata published in the OpenAPI document.
	App App `envPrefix:"APP_" yaml:"app"`

	// Server holds listener address and timeout settings.
	Server Server `envPrefix:"SERVER_" yaml:"server"`

	// CORS holds the cross-origin policy.
	CORS CORS `envPrefix:"CORS_" yaml:"cors"`

	// Auth describes where the authentication router lives.
	Auth Auth `envPrefix:"AUTH_" yaml:"auth"`

	// Log holds logger settings.
	Log Log `envPrefix:"LOG_" yaml:"log"`

	// FilePath is the optional YAML configuration file.
	// Env: CONFIG_FILE, flags: -c / -config.
	FilePath string `env:"CONFIG_FILE" yaml:"-"`
}

// App holds application metadata.
type App struct {
	// Env: APP_TITLE
	Title string `env:"TITLE" yaml:"title"`
	// Env: APP_DESCRIPTION
	Description string `env:"DESCRIPTION" yaml:"description"`
	// Env: APP_VERSION
	Version string `env:"VERSION" yaml:"version"`
}

// Server holds settings of the inbound HTTP listener.
type Server struct {
	// Address is the TCP address in "host:port" form (e.g. ":8000").
	// Env: SERVER_ADDRESS
	Address string `env:"ADDRESS" yaml:"address"`

	// Env: SERVER_READ_TIMEOUT
	ReadTimeout time.Duration `env:"READ_TIMEOUT" yaml:"read_timeout"`

	// Env: SERVER_WRITE_TIMEOUT
	WriteTimeout time.Duration `env:"WRITE_TIMEOUT" yaml:"write_timeout"`

	// Env: SERVER_IDLE_TIMEOUT
	IdleTimeout time.Duration `env:"IDLE_TIMEOUT" yaml:"idle_timeout"`

	// ShutdownTimeout bounds the graceful shutdown after a stop signal.
	// Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" yaml:"shutdown_timeout"`
}

// CORS holds the cross-origin allow-list.
//
// An empty AllowedOrigins list allows no origin at all. Credentials, methods
// and headers are not configurable: credentials are always allowed and every
// method and request header is accepted for origins that pass the check.
type CORS struct {
	// AllowedOrigins is the comma separated list of permitted origins.
	// Env: CORS_ALLOWED_ORIGINS
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," yaml:"allowed_origins"`

	// Debug enables rs/cors decision logging.
	// Env: CORS_DEBUG
	Debug *bool `env:"DEBUG" yaml:"debug"`
}

// DebugEnabled reports whether rs/cors decision logging is on.
func (c CORS) DebugEnabled() bool {
	return boolValue(c.Debug)
}

// Auth locates the external authentication router.
type Auth struct {
	// UpstreamURL is the base URL of the auth service. Empty means the
	// /api/auth prefix answers 503.
	// Env: AUTH_UPSTREAM_URL
	UpstreamURL string `env:"UPSTREAM_URL" yaml:"upstream_url"`

	// StripPrefix removes /api/auth before forwarding.
	// Env: AUTH_STRIP_PREFIX
	StripPrefix *bool `env:"STRIP_PREFIX" yaml:"strip_prefix"`
}

// StripsPrefix reports whether /api/auth is removed before forwarding.
func (a Auth) StripsPrefix() bool {
	return boolValue(a.StripPrefix)
}

// Log holds logger settings.
type Log struct {
	// Level is a zerolog level name (debug, info, warn, ...).
	// Env: LOG_LEVEL
	Level string `env:"LEVEL" yaml:"level"`

	// Pretty switches to the console writer.
	// Env: LOG_PRETTY
	Pretty *bool `env:"PRETTY" yaml:"pretty"`
}

// PrettyOutput reports whether the console writer is selected.
func (l Log) PrettyOutput() bool {
	return boolValue(l.Pretty)
}

func boolValue(b *bool) bool {
	return b != nil && *b
}

// ZerologLevel returns the parsed level, falling back to info. Load has
// already rejected unparsable values.
func (l Log) ZerologLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || l.Level == "" {
		return zerolog.InfoLevel
	}
	return level
}

// Load builds the configuration from flags (args, without the program name),
// environment variables, the optional YAML file and defaults, in that order of
// priority.
func Load(args []string) (*Config, error) {
	return newConfigBuilder().
		withFlags(args).
		withEnv().
		withFile().
		withDefaults().
		build()
}
