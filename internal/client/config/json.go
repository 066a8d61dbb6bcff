package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/physicalai/companion/internal/flagx"
	"github.com/physicalai/companion/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the query timeout either as a string
// like "60s" or as integer nanoseconds.
type JsonConfig struct {
	BackendURL   string         `json:"backend_url"`
	DatabasePath string         `json:"database_path"`
	AuthMode     string         `json:"auth_mode"`
	QueryTimeout timex.Duration `json:"query_timeout"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c/-config flags; when neither is given, nothing is
// loaded. Only fields present in the JSON override the current values.
// Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.BackendURL != "" {
		cfg.BackendURL = jc.BackendURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.AuthMode != "" {
		cfg.AuthMode = jc.AuthMode
	}
	if jc.QueryTimeout.Duration != 0 {
		cfg.QueryTimeout = time.Duration(jc.QueryTimeout.Duration)
	}
}
