package config

import "errors"

var (
	// ErrEnvFileNotFound is returned by LoadEnvFile when the env file does not
	// exist. Callers usually treat it as informational.
	ErrEnvFileNotFound = errors.New("env file not found")

	// ErrInvalidServerConfig indicates an empty address or a negative timeout.
	ErrInvalidServerConfig = errors.New("invalid server configuration")

	// ErrInvalidCORSConfig indicates a malformed allow-list entry.
	ErrInvalidCORSConfig = errors.New("invalid cors configuration")

	// ErrInvalidAuthConfig indicates an auth upstream URL that is not an
	// absolute http(s) URL.
	ErrInvalidAuthConfig = errors.New("invalid auth configuration")

	// ErrInvalidLogConfig indicates an unknown log level.
	ErrInvalidLogConfig = errors.New("invalid log configuration")
)
