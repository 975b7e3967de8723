package config

import (
	"flag"
	"fmt"
	"strings"
)

// parseFlags parses command-line flags.
//
// Flags:
//
//	-a               server address in format [host]:[port]
//	-c / -config     YAML config file path
//	-origins         comma separated CORS allow-list
//	-auth-upstream   base URL of the auth service
//	-log-level       zerolog level name
func parseFlags(args []string) (*Config, error) {
	fs := flag.NewFlagSet("researcher", flag.ContinueOnError)

	var address, filePath, origins, authUpstream, logLevel string

	fs.StringVar(&address, "a", "", "Net address host:port")
	fs.StringVar(&filePath, "c", "", "YAML config file path")
	fs.StringVar(&filePath, "config", "", "YAML config file path (alias)")
	fs.StringVar(&origins, "origins", "", "Comma separated CORS allowed origins")
	fs.StringVar(&authUpstream, "auth-upstream", "", "Auth service base URL")
	fs.StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	return &Config{
		Server: Server{
			Address: address,
		},
		CORS: CORS{
			AllowedOrigins: splitList(origins),
		},
		Auth: Auth{
			UpstreamURL: authUpstream,
		},
		Log: Log{
			Level: logLevel,
		},
		FilePath: filePath,
	}, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
