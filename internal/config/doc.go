// Package config handles configuration loading, parsing, and validation
// for the analysis worker. Values come from defaults, an optional YAML file
// and FUJI_-prefixed environment variables (a local .env file is honored),
// and are validated before the worker starts.
package config
