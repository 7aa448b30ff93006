package main

import (
	"fmt"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/cli"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/ports"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	app := &cli.App{
		Profiles:       cfg.Routing.Profiles,
		RoutingTimeout: cfg.Routing.Timeout,
		ArtifactDir:    cfg.Artifacts.Dir,
	}
	app.NewRouteProvider = func() (ports.RouteProvider, error) {
		// Without a cache every leg hits the routing service.
		return routing.NewORSRouteProvider(cfg.Routing.APIKey,
			routing.WithBaseURL(cfg.Routing.BaseURL),
			routing.WithMaxAttempts(cfg.Routing.Retries),
			routing.WithLogger(app.Logger),
		)
	}

	return cli.NewRootCmd(app).Execute()
}
