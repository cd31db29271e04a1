package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by Server.StorageDriver.
const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"
)

const devSigningKey = "dev-secret-key-change-in-production"

// Server captures process level configuration.
type Server struct {
	Addr          string `env:"TALLY_ADDR" envDefault:":8080"`
	Administrator string `env:"TALLY_ADMIN_IDENTITY" envDefault:"admin"`
	LogLevel      string `env:"TALLY_LOG_LEVEL" envDefault:"info"`
	Environment   string `env:"TALLY_ENV" envDefault:"dev"`

	HTTP     HTTPConfig
	JWT      JWTConfig
	Storage  StorageConfig
	Redis    RedisConfig
	Notify   NotifyConfig
	Snapshot SnapshotConfig
	Tracing  TracingConfig
}

// HTTPConfig holds the API server timeouts.
type HTTPConfig struct {
	ReadHeaderTimeout time.Duration `env:"TALLY_HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ReadTimeout       time.Duration `env:"TALLY_HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout      time.Duration `env:"TALLY_HTTP_WRITE_TIMEOUT" envDefault:"10s"`
	IdleTimeout       time.Duration `env:"TALLY_HTTP_IDLE_TIMEOUT" envDefault:"60s"`
	MaxHeaderBytes    int           `env:"TALLY_HTTP_MAX_HEADER_BYTES" envDefault:"16384"`
}

type JWTConfig struct {
	SigningKey string        `env:"TALLY_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer     string        `env:"TALLY_JWT_ISSUER" envDefault:"tally"`
	Audience   string        `env:"TALLY_JWT_AUDIENCE" envDefault:"tally-api"`
	TokenTTL   time.Duration `env:"TALLY_JWT_TTL" envDefault:"1h"`
}

type StorageConfig struct {
	Driver      string `env:"TALLY_STORAGE_DRIVER" envDefault:"memory"`
	PostgresDSN string `env:"TALLY_POSTGRES_DSN"`
	SQLitePath  string `env:"TALLY_SQLITE_PATH" envDefault:"tally.db"`
}

// RedisConfig configures the go-redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string        `env:"TALLY_REDIS_URL"`
	PoolSize     int           `env:"TALLY_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"TALLY_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"TALLY_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"TALLY_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"TALLY_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
	Key          string        `env:"TALLY_REDIS_KEY" envDefault:"tally:election:snapshot"`
}

// NotifyConfig configures notification delivery. With no brokers the
// notifications are written to the structured log.
type NotifyConfig struct {
	BufferSize    int           `env:"TALLY_NOTIFY_BUFFER_SIZE" envDefault:"1024"`
	BatchSize     int           `env:"TALLY_NOTIFY_BATCH_SIZE" envDefault:"100"`
	FlushInterval time.Duration `env:"TALLY_NOTIFY_FLUSH_INTERVAL" envDefault:"1s"`
	KafkaBrokers  []string      `env:"TALLY_KAFKA_BROKERS" envSeparator:","`
	KafkaTopic    string        `env:"TALLY_KAFKA_TOPIC" envDefault:"tally.election.events"`
}

type SnapshotConfig struct {
	Interval time.Duration `env:"TALLY_SNAPSHOT_INTERVAL" envDefault:"5s"`
}

// TracingConfig enables OTLP span export. Tracing stays off until an
// endpoint is configured.
type TracingConfig struct {
	Enabled     bool    `env:"TALLY_OTEL_ENABLED" envDefault:"true"`
	Endpoint    string  `env:"TALLY_OTEL_ENDPOINT"`
	ServiceName string  `env:"TALLY_OTEL_SERVICE_NAME" envDefault:"tally"`
	SampleRatio float64 `env:"TALLY_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// FromEnv parses and validates the server configuration.
func FromEnv() (Server, error) {
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Server{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that struct tags cannot express.
func (c Server) Validate() error {
	if strings.TrimSpace(c.Administrator) == "" {
		return errors.New("TALLY_ADMIN_IDENTITY is required")
	}
	if c.JWT.SigningKey == "" {
		return errors.New("TALLY_JWT_SIGNING_KEY is required")
	}
	if c.Environment == "prod" && c.JWT.SigningKey == devSigningKey {
		return errors.New("TALLY_JWT_SIGNING_KEY must be set in prod")
	}
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageRedis:
		if c.Redis.URL == "" {
			return errors.New("TALLY_REDIS_URL is required for the redis storage driver")
		}
	case StoragePostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("TALLY_POSTGRES_DSN is required for the postgres storage driver")
		}
	case StorageSQLite:
		if strings.TrimSpace(c.Storage.SQLitePath) == "" {
			return errors.New("TALLY_SQLITE_PATH is required for the sqlite storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.New("TALLY_OTEL_SAMPLE_RATIO must be between 0 and 1")
	}
	if c.Notify.BufferSize <= 0 {
		return errors.New("TALLY_NOTIFY_BUFFER_SIZE must be positive")
	}
	return nil
}
