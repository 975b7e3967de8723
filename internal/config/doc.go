// Package config loads the API configuration.
//
// Values are collected from command-line flags, environment variables, an
// optional YAML file and built-in defaults, then merged with mergo so that the
// first source holding a non-zero value wins. The merged result is validated
// before it is returned.
package config
