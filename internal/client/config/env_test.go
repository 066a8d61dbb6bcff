package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseEnv_Overlays(t *testing.T) {
	t.Setenv("COMPANION_BACKEND_URL", "http://env-backend:8000")
	t.Setenv("GEMINI_API_KEY", "k-env")
	t.Setenv("COMPANION_AUTH_MODE", "local")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "http://env-backend:8000", cfg.BackendURL)
	require.Equal(t, "k-env", cfg.GeminiAPIKey)
	require.Equal(t, AuthModeLocal, cfg.AuthMode)
	// Untouched fields keep defaults.
	require.Equal(t, "companion.db", cfg.DatabasePath)
}

func TestParseEnv_EmptyValuesIgnored(t *testing.T) {
	t.Setenv("COMPANION_BACKEND_URL", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	require.Equal(t, "http://127.0.0.1:8000", cfg.BackendURL)
}
