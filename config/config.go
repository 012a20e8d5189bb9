// Package config loads the application configuration from environment variables.
package config

import (
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Env  string `env:"APP_ENV" envDefault:"development"`
	Port int    `env:"PORT" envDefault:"5000"`

	StoreDriver  string        `env:"STORE_DRIVER" envDefault:"mongo"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT" envDefault:"5s"`

	MongoURIDev   string `env:"MONGO_URI_DEV" envDefault:"mongodb://localhost:27017/event-manager-dev"`
	MongoURIProd  string `env:"MONGO_URI_PROD" envDefault:"mongodb://localhost:27017/event-manager-prod"`
	MongoDatabase string `env:"MONGO_DATABASE"`

	// The SQL defaults are SQLite files. STORE_DRIVER=postgres needs both
	// SQL_DSN_DEV and SQL_DSN_PROD set to lib/pq connection strings.
	SQLDSNDev  string `env:"SQL_DSN_DEV" envDefault:"file:event-manager-dev.db?_time_format=sqlite"`
	SQLDSNProd string `env:"SQL_DSN_PROD" envDefault:"file:event-manager.db?_time_format=sqlite"`

	RedisAddr string        `env:"REDIS_ADDR"`
	CacheTTL  time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	SessionName   string `env:"SESSION_NAME" envDefault:"event-manager"`
	SessionSecret string `env:"SESSION_SECRET" envDefault:"secret"`

	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
	WriteQuota     int     `env:"WRITE_QUOTA" envDefault:"0"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment into a Config and checks the values that
// cannot be expressed as struct tags.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		return errors.Errorf("unknown APP_ENV %q", c.Env)
	}
	switch c.StoreDriver {
	case DriverMongo, DriverSQLite, DriverPostgres:
	default:
		return errors.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid PORT %d", c.Port)
	}
	if c.StoreTimeout <= 0 {
		return errors.New("STORE_TIMEOUT must be positive")
	}
	if c.RateLimitRPS <= 0 {
		return errors.Errorf("RATE_LIMIT_RPS must be positive, got %v", c.RateLimitRPS)
	}
	if c.RateLimitBurst <= 0 {
		return errors.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimitBurst)
	}
	return nil
}

// IsProduction reports whether the production environment is selected.
func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// MongoURI returns the connection string of the selected environment.
func (c Config) MongoURI() string {
	if c.IsProduction() {
		return c.MongoURIProd
	}
	return c.MongoURIDev
}

// SQLDSN returns the SQL data source name of the selected environment.
func (c Config) SQLDSN() string {
	if c.IsProduction() {
		return c.SQLDSNProd
	}
	return c.SQLDSNDev
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}
