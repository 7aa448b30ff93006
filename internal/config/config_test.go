package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("ROUTING_PROFILES", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 20*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, []string{"driving-car", "foot-walking"}, cfg.Routing.Profiles)
	assert.False(t, cfg.Routing.UseForSelection)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ROUTING_PROFILES", " foot-walking , ,driving-car")
	t.Setenv("SELECTION_USE_ROUTING", "true")
	t.Setenv("ROUTING_TIMEOUT", "5s")
	t.Setenv("ORS_BASE_URL", "http://localhost:8082/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"foot-walking", "driving-car"}, cfg.Routing.Profiles)
	assert.True(t, cfg.Routing.UseForSelection)
	assert.Equal(t, 5*time.Second, cfg.Routing.Timeout)
	assert.Equal(t, "http://localhost:8082", cfg.Routing.BaseURL)
}

func TestLoadPostgresRequiresURL(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown STORE_DRIVER")
}
