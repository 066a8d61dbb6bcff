package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/physicalai/companion/internal/logging"
	"github.com/physicalai/companion/internal/proxy"
)

func main() {
	_ = godotenv.Load()

	target := "http://127.0.0.1:8000"
	if v := os.Getenv("COMPANION_BACKEND_URL"); v != "" {
		target = v
	}

	listen := flag.String("l", ":3000", "listen address")
	flag.StringVar(&target, "t", target, "backend target URL")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewDefault(slog.LevelInfo)
	if err := proxy.Run(ctx, proxy.Config{Listen: *listen, Target: target}, logger); err != nil {
		log.Fatalf("%v", err)
	}
}
