package config

import "time"

// Config holds runtime settings for the companion client.
//
// Fields:
//   - BackendURL: base URL of the textbook backend.
//   - DatabasePath: sqlite file holding persisted session state.
//   - AuthMode: "backend" (token-based, canonical) or "local" (offline
//     registered-user list).
//   - GeminiAPIKey / GeminiModel: generative-text API credentials for the
//     direct translate path; empty key disables it.
//   - QueryTimeout: client-side cancellation deadline for chat queries.
type Config struct {
	BackendURL   string
	DatabasePath string
	AuthMode     string
	GeminiAPIKey string
	GeminiModel  string
	QueryTimeout time.Duration
}

// AuthMode values.
const (
	AuthModeBackend = "backend"
	AuthModeLocal   = "local"
)

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://127.0.0.1:8000"
	c.DatabasePath = "companion.db"
	c.AuthMode = AuthModeBackend
	c.GeminiModel = "gemini-pro"
	c.QueryTimeout = 60 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (including a .env file if present), a JSON config
// file (if given), and command-line flags. Later sources take precedence
// over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
