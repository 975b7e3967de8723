package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const defaultEnvFile = ".env"

// parseEnv populates cfg from environment variables via the `env` and
// `envPrefix` struct tags.
func parseEnv(cfg any) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from the file named by ENV_FILE (default
// ".env") into the process environment. Variables that are already set are
// left untouched. A missing file yields ErrEnvFileNotFound.
func LoadEnvFile() (string, error) {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return path, ErrEnvFileNotFound
		}
		return path, fmt.Errorf("error loading env file %q: %w", path, err)
	}

	return path, nil
}
