package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// parseFile reads a YAML configuration file. Unknown keys are rejected so
// typos surface at startup.
func parseFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file %q: %w", path, err)
	}
	defer f.Close()

	cfg := &Config{}
	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("error decoding config file %q: %w", path, err)
	}

	return cfg, nil
}
