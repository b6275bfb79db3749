package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"septic-canary/internal/config"
	"septic-canary/internal/logging"
	"septic-canary/internal/repository"
	"septic-canary/internal/service"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := execute(ctx, newLookupCmd(buildService)); err != nil {
		stop()
		os.Exit(1)
	}
}

func buildService() (LookupService, error) {
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		return nil, err
	}
	if err := logging.Setup(cfg.LogLevel, "console"); err != nil {
		return nil, err
	}

	repo := repository.NewRepository(
		cfg.HouseCanaryAPIBaseURL,
		cfg.HouseCanaryAPIKey,
		cfg.HouseCanaryAPISecret,
		repository.WithHTTPClient(&http.Client{Timeout: cfg.UpstreamTimeout}),
	)
	return service.NewPropertyService(repo, service.SystemClock{}), nil
}
