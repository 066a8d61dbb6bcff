package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from environment variables, loading a
// .env file from the working directory first when one exists. Secrets (the
// generative-text API key) are only ever read from here, never from flags or
// the JSON file, so they stay out of shell history and checked-in configs.
//
// Recognized variables:
//
//	COMPANION_BACKEND_URL
//	COMPANION_DB_PATH
//	COMPANION_AUTH_MODE
//	GEMINI_API_KEY
//	GEMINI_MODEL
func parseEnv(cfg *Config) {
	// Missing .env is the normal case outside development.
	_ = godotenv.Load()

	if v := os.Getenv("COMPANION_BACKEND_URL"); v != "" {
		cfg.BackendURL = v
	}
	if v := os.Getenv("COMPANION_DB_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("COMPANION_AUTH_MODE"); v != "" {
		cfg.AuthMode = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		cfg.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		cfg.GeminiModel = v
	}
}
