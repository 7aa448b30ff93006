package main

import (
	"context"
	"itinerary-planner-service/internal/adapters/csvsource"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/platform/logger"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// dbtool prepares a Postgres database: it creates the schema and upserts the
// places dataset from PLACES_CSV.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	if strings.TrimSpace(cfg.Store.DatabaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	ctx := context.Background()
	pool, err := db.Open(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		zl.Fatal("connect", zap.Error(err))
	}
	defer pool.Close()

	if err := initAndSeed(ctx, pool, cfg.Store.PlacesCSV, zl); err != nil {
		zl.Fatal("dbtool failed", zap.Error(err))
	}
}

func initAndSeed(ctx context.Context, q db.Querier, csvPath string, zl *zap.Logger) error {
	zl.Info("initializing database schema")
	if err := repositories.InitPgSchema(ctx, q); err != nil {
		return err
	}
	zl.Info("schema ready")

	places, report, err := csvsource.LoadFile(csvPath)
	if err != nil {
		return err
	}

	zl.Info("seeding places", zap.String("path", csvPath), zap.Int("rows", report.Rows))
	if err := repositories.SeedPgPlaces(ctx, q, places); err != nil {
		return err
	}
	zl.Info("seeding complete",
		zap.Int("loaded", report.Loaded),
		zap.Int("skipped", report.Skipped()),
		zap.Ints("skipped_lines", report.SkippedRows))

	return nil
}
