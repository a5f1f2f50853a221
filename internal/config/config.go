package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"pmboard/internal/storage"
)

// Config holds the server settings.
type Config struct {
	Addr        string
	StaticDir   string
	RequireAuth bool
	Seed        bool
	Database    DatabaseConfig
	JWT         JWTConfig
}

// DatabaseConfig selects and locates the store.
type DatabaseConfig struct {
	Driver   string
	Path     string
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig configures bearer tokens.
type JWTConfig struct {
	Secret   string
	Duration time.Duration
}

// DSN returns the connection string for the configured driver.
func (d DatabaseConfig) DSN() string {
	if d.Driver == storage.DriverPostgres {
		return storage.PostgresDSN(d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
	}
	return d.Path
}

// Load reads .env (if present) and the environment, then applies command
// line flags from args on top.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        EnvOrDefault("PMBOARD_ADDR", ":3001"),
		StaticDir:   EnvOrDefault("PMBOARD_STATIC_DIR", ""),
		RequireAuth: envAsBool("PMBOARD_REQUIRE_AUTH", false),
		Seed:        envAsBool("PMBOARD_SEED", true),
		Database: DatabaseConfig{
			Driver:   EnvOrDefault("PMBOARD_DB_DRIVER", storage.DriverSQLite),
			Path:     EnvOrDefault("PMBOARD_DB_PATH", "data/pmboard.db"),
			Host:     EnvOrDefault("DB_HOST", "localhost"),
			Port:     envAsInt("DB_PORT", 5432),
			User:     EnvOrDefault("DB_USER", "postgres"),
			Password: EnvOrDefault("DB_PASSWORD", "password"),
			Name:     EnvOrDefault("DB_NAME", "project_manager"),
			SSLMode:  EnvOrDefault("DB_SSL_MODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:   EnvOrDefault("JWT_SECRET", "dev-secret-change-in-production"),
			Duration: envAsDuration("JWT_TTL", 24*time.Hour),
		},
	}

	fs := flag.NewFlagSet("pmboard", flag.ContinueOnError)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.Database.Driver, "db-driver", cfg.Database.Driver, "Database driver (sqlite3 or postgres)")
	fs.StringVar(&cfg.Database.Path, "db", cfg.Database.Path, "Path to sqlite database file")
	fs.StringVar(&cfg.StaticDir, "static", cfg.StaticDir, "Directory with built frontend")
	fs.BoolVar(&cfg.RequireAuth, "require-auth", cfg.RequireAuth, "Reject requests without a valid bearer token")
	fs.BoolVar(&cfg.Seed, "seed", cfg.Seed, "Seed an empty database with sample data")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the combination of settings.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case storage.DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database path must be set for %s", c.Database.Driver)
		}
	case storage.DriverPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("DB_HOST and DB_NAME must be set for postgres")
		}
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	return nil
}

// EnvOrDefault returns the environment variable value or fallback when it is empty.
func EnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func envAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func envAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func envAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}
