package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lumo-dev/lumo/internal/errors"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Address != ":8080" {
		t.Errorf("Address = %q, want :8080", cfg.Server.Address)
	}
	if cfg.Server.PingIntervalDuration() != 30*time.Second {
		t.Errorf("PingInterval = %v, want 30s", cfg.Server.PingIntervalDuration())
	}
	if cfg.Server.ReadLimit != 512*1024 {
		t.Errorf("ReadLimit = %d, want 512KB", cfg.Server.ReadLimit)
	}
	if cfg.Log.Level != "info" || !cfg.Metrics.Enabled || cfg.Metrics.Namespace != "lumo" {
		t.Errorf("defaults = %+v", cfg)
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":8080" || cfg.Log.Level != "info" {
		t.Errorf("cfg = %+v, want defaults", cfg)
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lumod.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
address = ":9000"
allowed_origins = ["https://example.com"]
ping_interval = "10s"

[log]
level = "debug"
pretty = true

[engine]
debug = true
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":9000" {
		t.Errorf("Address = %q, want :9000", cfg.Server.Address)
	}
	if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://example.com" {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.PingIntervalDuration() != 10*time.Second {
		t.Errorf("PingInterval = %v, want 10s", cfg.Server.PingIntervalDuration())
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Pretty || !cfg.Engine.Debug {
		t.Errorf("cfg = %+v", cfg)
	}

	// Keys absent from the file keep their defaults.
	if cfg.Server.ReadLimit != 512*1024 {
		t.Errorf("ReadLimit = %d, want the default", cfg.Server.ReadLimit)
	}
	if !cfg.Metrics.Enabled {
		t.Error("metrics default must survive a partial file")
	}
}

func TestEnvOverridesFileAndDefaults(t *testing.T) {
	path := writeConfig(t, "[server]\naddress = \":9000\"\n")
	t.Setenv("LUMO_SERVER_ADDRESS", ":7070")
	t.Setenv("LUMO_LOG_LEVEL", "warn")
	t.Setenv("LUMO_METRICS_ENABLED", "false")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Address != ":7070" {
		t.Errorf("Address = %q, want the env override", cfg.Server.Address)
	}
	if cfg.Log.Level != "warn" || cfg.Metrics.Enabled {
		t.Errorf("cfg = %+v, want env overrides applied", cfg)
	}
}

func TestEnvOverrideRejectsBadBool(t *testing.T) {
	t.Setenv("LUMO_ENGINE_DEBUG", "definitely")
	_, err := Load("")
	if e, ok := err.(*errors.Error); !ok || e.Code != "E700" {
		t.Errorf("err = %v, want E700", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if e, ok := err.(*errors.Error); !ok || e.Code != "E700" {
		t.Errorf("err = %v, want E700", err)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"empty address", "[server]\naddress = \" \"\n"},
		{"unknown log level", "[log]\nlevel = \"loud\"\n"},
		{"negative ping", "[server]\nping_interval = \"-5s\"\n"},
		{"invalid duration", "[server]\nping_interval = \"soon\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected a load error")
			}
			if e, ok := err.(*errors.Error); !ok || e.Code != "E700" {
				t.Errorf("err = %v, want E700", err)
			}
		})
	}
}
