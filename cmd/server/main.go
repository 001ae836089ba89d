package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"kakaku/internal/config"
	"kakaku/internal/engine"
	"kakaku/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yml", "server config YAML (optional, env vars override)")
	flag.Parse()

	// .env is a local-dev convenience; absent in real deployments.
	_ = godotenv.Load()
	logging.InitFromEnv()

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	e, err := engine.Bootstrap(cfg)
	if err != nil {
		log.Fatalf("bootstrap: %v", err)
	}

	if err := e.Run(ctx); err != nil {
		log.Fatalf("engine: %v", err)
	}
}
