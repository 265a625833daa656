// Package config loads, validates and writes the client configuration.
// Settings come from a YAML file read with viper and may be overridden by
// BASIC_API_CLIENT_* environment variables.
package config
