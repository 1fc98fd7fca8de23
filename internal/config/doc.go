// Package config loads and merges the application configuration from
// environment variables, command-line flags, and an optional JSON file.
//
// The three sources are parsed independently into [StructuredConfig]
// values and merged with mergo (first non-zero value wins, so environment
// variables take precedence over flags, which take precedence over the
// JSON file). Defaults are applied last and the final result is validated
// before use.
package config
