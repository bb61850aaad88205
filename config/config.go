package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres PostgresConfig `yaml:"postgres"`
	NATS     NATSConfig     `yaml:"nats"`
	HTTP     HTTPConfig     `yaml:"http"`
	JWT      JWTConfig      `yaml:"jwt"`
	Join     JoinConfig     `yaml:"join"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	AppEnv   string         `yaml:"app_env"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

// NATSConfig holds NATS configuration. When URL is empty the application runs
// with an in-process event bus instead of JetStream.
type NATSConfig struct {
	URL string `yaml:"url"`
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// JWTConfig holds session token configuration.
type JWTConfig struct {
	Secret     string        `yaml:"secret"`
	DefaultTTL time.Duration `yaml:"default_ttl"`
}

// JoinConfig holds join workflow configuration.
type JoinConfig struct {
	SessionTTL time.Duration `yaml:"session_ttl"`
	RateLimit  float64       `yaml:"rate_limit"`
	RateBurst  int           `yaml:"rate_burst"`
}

// MetricsConfig holds Prometheus configuration.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(filename)
	if err != nil {
		// If the file is not found, fall back to environment variables only
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("NATS_URL"); v != "" {
		cfg.NATS.URL = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWT.Secret = v
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Metrics.Addr = v
	}
	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.AppEnv = v
	}

	applyDefaults(&cfg)

	if cfg.Postgres.DSN == "" {
		return nil, fmt.Errorf("postgres DSN is required (config file or DATABASE_URL)")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required (config file or JWT_SECRET)")
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.JWT.DefaultTTL == 0 {
		cfg.JWT.DefaultTTL = 24 * time.Hour
	}
	if cfg.Join.SessionTTL == 0 {
		cfg.Join.SessionTTL = 15 * time.Minute
	}
	if cfg.Join.RateLimit == 0 {
		cfg.Join.RateLimit = 5
	}
	if cfg.Join.RateBurst == 0 {
		cfg.Join.RateBurst = 10
	}
}
