package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Server    ServerConfig
	Store     StoreConfig
	Routing   RoutingConfig
	Redis     RedisConfig
	Artifacts ArtifactConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	Driver      string
	SQLitePath  string
	DatabaseURL string
	PlacesCSV   string
}

type RoutingConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
	Retries int
	// Profiles is the ordered fallback chain used when stitching the route.
	Profiles []string
	// UseForSelection makes the itinerary builder consult the router for
	// leg distances instead of relying on the straight-line estimate.
	UseForSelection bool
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}

type ArtifactConfig struct {
	Dir string
}

type LogConfig struct {
	Level string
}

// Load reads configuration from the environment. Call godotenv.Load first
// to populate the environment from a .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("STORE_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "data/app.db")
	v.SetDefault("PLACES_CSV", "data/places.csv")
	v.SetDefault("ORS_BASE_URL", "https://api.openrouteservice.org")
	v.SetDefault("ROUTING_TIMEOUT", "20s")
	v.SetDefault("ROUTING_RETRIES", 2)
	v.SetDefault("ROUTING_PROFILES", "driving-car,foot-walking")
	v.SetDefault("SELECTION_USE_ROUTING", false)
	v.SetDefault("ROUTE_CACHE_TTL", "24h")
	v.SetDefault("ARTIFACT_DIR", "data/artifacts")

	cfg := &Config{
		Server: ServerConfig{
			Port: v.GetString("PORT"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(strings.TrimSpace(v.GetString("STORE_DRIVER"))),
			SQLitePath:  v.GetString("DB_PATH"),
			DatabaseURL: v.GetString("DATABASE_URL"),
			PlacesCSV:   v.GetString("PLACES_CSV"),
		},
		Routing: RoutingConfig{
			APIKey:          strings.TrimSpace(v.GetString("ORS_API_KEY")),
			BaseURL:         strings.TrimRight(v.GetString("ORS_BASE_URL"), "/"),
			Timeout:         v.GetDuration("ROUTING_TIMEOUT"),
			Retries:         v.GetInt("ROUTING_RETRIES"),
			Profiles:        splitCSV(v.GetString("ROUTING_PROFILES")),
			UseForSelection: v.GetBool("SELECTION_USE_ROUTING"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			TTL:      v.GetDuration("ROUTE_CACHE_TTL"),
		},
		Artifacts: ArtifactConfig{
			Dir: v.GetString("ARTIFACT_DIR"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate reports missing or inconsistent settings.
func (c *Config) Validate() error {
	var missing []string

	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			missing = append(missing, "DB_PATH")
		}
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		return fmt.Errorf("config: unknown STORE_DRIVER %q", c.Store.Driver)
	}

	if len(c.Routing.Profiles) == 0 {
		missing = append(missing, "ROUTING_PROFILES")
	}

	if c.Routing.Timeout <= 0 {
		return fmt.Errorf("config: ROUTING_TIMEOUT must be positive, got %s", c.Routing.Timeout)
	}

	if len(missing) > 0 {
		return fmt.Errorf("config: required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return nil
}

func (c *Config) Addr() string {
	return ":" + c.Server.Port
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
