package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"itinerary-planner-service/internal/adapters/artifacts"
	"itinerary-planner-service/internal/adapters/cache"
	"itinerary-planner-service/internal/adapters/repositories"
	"itinerary-planner-service/internal/adapters/routing"
	"itinerary-planner-service/internal/api"
	"itinerary-planner-service/internal/config"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/db"
	"itinerary-planner-service/internal/platform/logger"
	"itinerary-planner-service/internal/ports"
	"itinerary-planner-service/internal/services"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, ORS) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zl, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zl.Sync() }()

	if err := run(cfg, zl); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zl *zap.Logger) error {
	if cfg.Routing.APIKey == "" {
		return errors.New("ORS_API_KEY is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg, zl)
	if err != nil {
		return err
	}
	defer st.Close()

	routeCache := st.cache
	if rc := openRedis(ctx, cfg, zl); rc != nil {
		defer rc.Close()
		routeCache = cache.NewTieredRouteCache(
			cache.NewRedisRouteCache(rc, cfg.Redis.TTL, zl),
			st.cache,
		)
	}

	// ORS provider checks the route cache before every external call.
	provider, err := routing.NewORSRouteProvider(cfg.Routing.APIKey,
		routing.WithBaseURL(cfg.Routing.BaseURL),
		routing.WithMaxAttempts(cfg.Routing.Retries),
		routing.WithCache(routeCache),
		routing.WithLogger(zl),
	)
	if err != nil {
		return err
	}

	builder := &services.ItineraryBuilder{Timeout: cfg.Routing.Timeout, Logger: zl}
	if cfg.Routing.UseForSelection {
		builder.Router = provider
	}

	artifactStore := artifacts.NewFSStore(cfg.Artifacts.Dir, zl)
	planner := &services.TripPlanner{
		Places:  st.places,
		Builder: builder,
		Stitcher: &services.RouteStitcher{
			Provider:   provider,
			Strategies: services.StrategiesFor(cfg.Routing.Profiles, cfg.Routing.Timeout),
			Logger:     zl,
		},
		Artifacts: artifactStore,
		Logger:    zl,
	}

	router := api.NewRouter(api.Deps{
		Places:    st.places,
		Planner:   planner,
		Artifacts: artifactStore,
		Logger:    zl,
	})

	// Timeouts are tuned for cold-cache route stitching (external API latency).
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      180 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server listening", zap.String("addr", srv.Addr), zap.String("store", cfg.Store.Driver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

type store struct {
	places ports.PlaceRepository
	cache  ports.RouteCache
	closer io.Closer
}

func (s *store) Close() {
	if s.closer != nil {
		_ = s.closer.Close()
	}
}

type closerFunc func()

func (f closerFunc) Close() error { f(); return nil }

// openStore selects the places repository and durable route cache.
// The SQLite store is seeded from the CSV dataset on every start.
func openStore(ctx context.Context, cfg *config.Config, zl *zap.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		pool, err := db.Open(ctx, cfg.Store.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := repositories.InitPgSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &store{
			places: repositories.NewPgPlaceRepository(pool, zl),
			cache:  cache.NewPgRouteCache(pool, zl),
			closer: closerFunc(pool.Close),
		}, nil

	default:
		conn, err := db.OpenSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, err
		}
		if err := initAndSeed(conn, cfg.Store.PlacesCSV, zl); err != nil {
			conn.Close()
			return nil, err
		}
		return &store{
			places: repositories.NewSqlitePlaceRepository(conn, zl),
			cache:  cache.NewSqliteRouteCache(conn, zl),
			closer: conn,
		}, nil
	}
}

func initAndSeed(conn *sql.DB, csvPath string, zl *zap.Logger) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	skipped, err := repositories.SeedFromCSV(conn, csvPath)
	if errors.Is(err, domain.ErrDatasetMissing) || errors.Is(err, domain.ErrEmptyDataset) {
		// Serve whatever the database already holds; planning reports an empty dataset.
		zl.Warn("places dataset not seeded", zap.String("path", csvPath), zap.Error(err))
		return nil
	}
	if err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}
	if skipped > 0 {
		zl.Warn("skipped invalid dataset rows", zap.String("path", csvPath), zap.Int("skipped", skipped))
	}

	return nil
}

// openRedis returns nil when no shared cache is configured or reachable.
func openRedis(ctx context.Context, cfg *config.Config, zl *zap.Logger) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}

	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rc.Ping(pingCtx).Err(); err != nil {
		zl.Warn("redis unavailable; continuing without shared route cache",
			zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		_ = rc.Close()
		return nil
	}

	return rc
}
