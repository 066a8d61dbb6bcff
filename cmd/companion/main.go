package main

import (
	"context"
	"log"
	"log/slog"

	"github.com/physicalai/companion/internal/client/cli"
	"github.com/physicalai/companion/internal/client/config"
	"github.com/physicalai/companion/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.LoadConfig()
	logger := logging.NewDefault(slog.LevelWarn)

	app, err := cli.NewApp(cfg, logger)
	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)
}
