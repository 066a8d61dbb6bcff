package config

import (
	"flag"
	"os"
	"time"

	"github.com/physicalai/companion/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-b string   base URL of the textbook backend (default from Config)
//	-d string   path to the local storage database
//	-m string   auth mode: backend or local
//	-t int      chat query timeout in seconds
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-b", "-d", "-m", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.BackendURL, "b", cfg.BackendURL, "base URL of the textbook backend")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the local storage database")
	fs.StringVar(&cfg.AuthMode, "m", cfg.AuthMode, "auth mode: backend or local")
	queryTimeout := fs.Int("t", int(cfg.QueryTimeout.Seconds()), "chat query timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.QueryTimeout = time.Duration(*queryTimeout) * time.Second
}
