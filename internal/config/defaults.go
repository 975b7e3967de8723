package config

import "time"

const (
	DefaultTitle       = "Researcher - Your AI Research Assistant"
	DefaultDescription = "Your platform for conducting deep research and generating comprehensive reports"
	DefaultVersion     = "0.1.0"
	DefaultAddress     = ":8000"
)

func defaultConfig() *Config {
	return &Config{
		App: App{
			Title:       DefaultTitle,
			Description: DefaultDescription,
			Version:     DefaultVersion,
		},
		Server: Server{
			Address:         DefaultAddress,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Log: Log{
			Level: "info",
		},
	}
}
