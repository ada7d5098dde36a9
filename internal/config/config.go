// Package config loads the lumod daemon configuration from TOML, with a
// defaults overlay: unset keys keep their default values. A small set of
// LUMO_* environment variables overrides both.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/lumo-dev/lumo/internal/errors"
)

// Config is the daemon configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Log     LogConfig     `toml:"log"`
	Metrics MetricsConfig `toml:"metrics"`
	Engine  EngineConfig  `toml:"engine"`
}

// ServerConfig configures the HTTP/WebSocket listener.
type ServerConfig struct {
	Address        string   `toml:"address"`
	AllowedOrigins []string `toml:"allowed_origins"`
	PingInterval   duration `toml:"ping_interval"`
	ReadLimit      int64    `toml:"read_limit"`
}

// LogConfig configures the zerolog output.
type LogConfig struct {
	Level  string `toml:"level"`
	Pretty bool   `toml:"pretty"`
}

// MetricsConfig configures the Prometheus exposition endpoint.
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
}

// EngineConfig configures per-session engines.
type EngineConfig struct {
	Debug bool `toml:"debug"`
}

// duration wraps time.Duration for TOML string values like "30s".
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Address:      ":8080",
			PingInterval: duration{30 * time.Second},
			ReadLimit:    512 * 1024,
		},
		Log: LogConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "lumo",
		},
	}
}

// Load reads the TOML file at path over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, errors.New("E700").With("path", path).Wrap(err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides individual keys from LUMO_* environment variables.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("LUMO_SERVER_ADDRESS"); ok {
		cfg.Server.Address = v
	}
	if v, ok := os.LookupEnv("LUMO_LOG_LEVEL"); ok {
		cfg.Log.Level = v
	}
	if v, ok := os.LookupEnv("LUMO_METRICS_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E700").With("detail", "LUMO_METRICS_ENABLED: "+v)
		}
		cfg.Metrics.Enabled = b
	}
	if v, ok := os.LookupEnv("LUMO_ENGINE_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("E700").With("detail", "LUMO_ENGINE_DEBUG: "+v)
		}
		cfg.Engine.Debug = b
	}
	return nil
}

func validate(cfg Config) error {
	if strings.TrimSpace(cfg.Server.Address) == "" {
		return errors.New("E700").With("detail", "server.address is empty")
	}
	switch cfg.Log.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return errors.New("E700").With("detail", "unknown log.level "+cfg.Log.Level)
	}
	if cfg.Server.PingInterval.Duration < 0 {
		return errors.New("E700").With("detail", "server.ping_interval is negative")
	}
	return nil
}

// PingIntervalDuration returns the configured keepalive interval.
func (s ServerConfig) PingIntervalDuration() time.Duration {
	return s.PingInterval.Duration
}
