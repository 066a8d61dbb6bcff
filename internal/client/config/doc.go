// Package config loads companion client configuration from defaults,
// environment variables (with optional .env), an optional JSON file, and
// command-line flags, in that order of increasing precedence.
package config
