package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pmboard/internal/storage"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PMBOARD_ADDR", "PMBOARD_DB_DRIVER", "PMBOARD_DB_PATH", "JWT_SECRET", "JWT_TTL", "PMBOARD_REQUIRE_AUTH", "PMBOARD_SEED"} {
		t.Setenv(key, "")
	}

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, ":3001", cfg.Addr)
	assert.Equal(t, storage.DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/pmboard.db", cfg.Database.DSN())
	assert.Equal(t, 24*time.Hour, cfg.JWT.Duration)
	assert.False(t, cfg.RequireAuth)
	assert.True(t, cfg.Seed)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	t.Setenv("PMBOARD_ADDR", ":8080")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("PMBOARD_REQUIRE_AUTH", "true")

	cfg, err := Load([]string{"-addr", ":9090", "-seed=false"})
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr, "flags win over the environment")
	assert.Equal(t, 2*time.Hour, cfg.JWT.Duration)
	assert.True(t, cfg.RequireAuth)
	assert.False(t, cfg.Seed)
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("PMBOARD_DB_DRIVER", "postgres")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_NAME", "board")

	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Contains(t, cfg.Database.DSN(), "host=db port=6543")
	assert.Contains(t, cfg.Database.DSN(), "dbname=board")
}

func TestValidate(t *testing.T) {
	cfg := &Config{Database: DatabaseConfig{Driver: "mysql"}, JWT: JWTConfig{Secret: "x"}}
	assert.Error(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Driver: storage.DriverSQLite, Path: "x.db"}}
	assert.Error(t, cfg.Validate(), "empty secret")
}

func TestEnvOrDefault(t *testing.T) {
	t.Setenv("PMBOARD_TEST_VALUE", "set")
	assert.Equal(t, "set", EnvOrDefault("PMBOARD_TEST_VALUE", "fallback"))
	assert.Equal(t, "fallback", EnvOrDefault("PMBOARD_TEST_MISSING", "fallback"))
}
