package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	DriverPostgres = "postgres"
	DriverBadger   = "badger"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"SalesDash"`
		Port int    `envconfig:"PORT" default:"3000"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}

	Server struct {
		Timeout        time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
		AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`
	}

	Store struct {
		Driver string `envconfig:"STORE_DRIVER" default:"postgres"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"salesdash"`
		Migrate  bool   `envconfig:"DB_MIGRATE" default:"true"`
	}

	Badger struct {
		// Empty path keeps the store in memory.
		Path string `envconfig:"BADGER_PATH" default:"./data"`
	}

	Seed struct {
		URL             string        `envconfig:"SEED_URL" default:"https://s3.amazonaws.com/roxiler.com/product_transaction.json"`
		Timeout         time.Duration `envconfig:"SEED_TIMEOUT" default:"30s"`
		SkipIfPopulated bool          `envconfig:"SEED_SKIP_IF_POPULATED" default:"false"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

// LogLevel parses Log.Level, falling back to info for unknown names.
func (c *Config) LogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return slog.LevelInfo
	}

	return level
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	switch cfg.Store.Driver {
	case DriverPostgres, DriverBadger:
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}

	if cfg.Seed.URL == "" {
		return nil, fmt.Errorf("SEED_URL must not be empty")
	}

	return &cfg, nil
}
