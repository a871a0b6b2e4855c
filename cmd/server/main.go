package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/cantuslab/cantus/config"
	"github.com/cantuslab/cantus/pkg/otel"
	"github.com/cantuslab/cantus/server"

	"github.com/joho/godotenv"
)

var version = "dev"

func main() {
	godotenv.Load()

	configFlag := flag.String("config", "", "config file path")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	if err := otel.Setup("cantus", version); err != nil {
		slog.Error("telemetry setup failed", "error", err)
		os.Exit(1)
	}

	cfg := config.Default()

	if *configFlag != "" {
		parsed, err := config.Parse(*configFlag)

		if err != nil {
			slog.Error("invalid config", "path", *configFlag, "error", err)
			os.Exit(1)
		}

		cfg = parsed
	}

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	slog.Info("listening", "address", cfg.Address)

	if err := s.ListenAndServe(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
