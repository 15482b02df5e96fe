// Package config loads runtime settings from the environment.
package config

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Session storage drivers.
const (
	DriverFile  = "file"
	DriverRedis = "redis"
	DriverMongo = "mongo"
)

type Config struct {
	Addr      string `env:"TASKDESK_ADDR, default=127.0.0.1:5173"`
	Env       string `env:"ENV,           default=development"`
	LogLevel  string `env:"LOG_LEVEL,     default=info"`
	LogPretty bool   `env:"LOG_PRETTY,    default=false"`

	// TrustedOrigins are host[:port] values allowed to POST forms
	// cross-origin.
	TrustedOrigins []string `env:"CSRF_TRUSTED_ORIGINS"`

	Backend BackendConfig
	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:5000/api"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=10s"`
}

type SessionConfig struct {
	Driver string `env:"SESSION_DRIVER, default=file"`
	Prefix string `env:"SESSION_PREFIX, default=taskdesk"`
	File   string `env:"SESSION_FILE,   default=.taskdesk/session.json"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskdesk"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Driver {
	case DriverFile, DriverRedis, DriverMongo:
	default:
		return fmt.Errorf("SESSION_DRIVER %q is not one of file, redis, mongo", c.Session.Driver)
	}
	if c.Session.Prefix == "" {
		return fmt.Errorf("SESSION_PREFIX must not be empty")
	}
	u, err := url.Parse(c.Backend.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("BACKEND_URL %q must be an absolute http(s) URL", c.Backend.URL)
	}
	return nil
}

// IsDevelopment reports whether ENV selects development defaults.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }
