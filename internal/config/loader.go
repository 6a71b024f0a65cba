package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "eventpulse.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "EVENTPULSE_PORT")
	setString(&cfg.Server.CORSOrigin, "EVENTPULSE_CORS_ORIGIN")
	setString(&cfg.Hub.Port, "EVENTPULSE_HUB_PORT")
	setString(&cfg.Hub.WebhookURL, "EVENTPULSE_HUB_WEBHOOK_URL")
	setDuration(&cfg.Hub.NotifyTimeout, "EVENTPULSE_HUB_NOTIFY_TIMEOUT")
	setDuration(&cfg.Hub.WriteTimeout, "EVENTPULSE_HUB_WRITE_TIMEOUT")
	setInt(&cfg.Hub.SendBuffer, "EVENTPULSE_HUB_SEND_BUFFER")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "EVENTPULSE_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "EVENTPULSE_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "EVENTPULSE_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "EVENTPULSE_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "EVENTPULSE_PG_HEALTH_CHECK")
	setInt64(&cfg.Cache.MaxSizeMB, "EVENTPULSE_CACHE_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "EVENTPULSE_CACHE_TTL")
	setString(&cfg.Logging.Level, "EVENTPULSE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "EVENTPULSE_LOG_SERVICE")
	setString(&cfg.Telemetry.OTLPEndpoint, "EVENTPULSE_OTLP_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Hub.Port == "" {
		return errors.New("hub.port is required")
	}
	if cfg.Hub.WebhookURL == "" {
		return errors.New("hub.webhook_url is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Hub.SendBuffer < 1 {
		return errors.New("hub.send_buffer must be >= 1")
	}
	if cfg.Hub.WriteTimeout <= 0 {
		return errors.New("hub.write_timeout must be positive")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
