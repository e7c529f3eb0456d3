package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Store.Backend != "file" {
		t.Errorf("default backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.Canvas.Width != 1200 || cfg.Canvas.Height != 628 {
		t.Errorf("default canvas = %.0fx%.0f, want 1200x628", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if len(cfg.Images.TrustedOrigins) != 1 || cfg.Images.TrustedOrigins[0] != "*" {
		t.Errorf("default trusted origins = %v, want [*]", cfg.Images.TrustedOrigins)
	}
	if cfg.Serve.Addr != ":8080" {
		t.Errorf("default serve addr = %q, want :8080", cfg.Serve.Addr)
	}
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[store]
backend = "redis"
redis_addr = "redis.internal:6379"

[images]
trusted_origins = ["cdn.example.com", "assets.example.com"]

[canvas]
width = 800
height = 400

[brand]
partner_name = "Acme Corp"
colors = ["#FF6B35", "#004E89"]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}

	if cfg.Store.Backend != "redis" {
		t.Errorf("backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.RedisAddr != "redis.internal:6379" {
		t.Errorf("redis addr = %q", cfg.Store.RedisAddr)
	}
	if len(cfg.Images.TrustedOrigins) != 2 {
		t.Errorf("trusted origins = %v, want 2 entries", cfg.Images.TrustedOrigins)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 400 {
		t.Errorf("canvas = %.0fx%.0f, want 800x400", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Brand.PartnerName != "Acme Corp" {
		t.Errorf("partner = %q", cfg.Brand.PartnerName)
	}
	if len(cfg.Brand.Colors) != 2 {
		t.Errorf("brand colors = %v, want 2 entries", cfg.Brand.Colors)
	}
}

func TestLoadConfigUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store]\nbackend = \"cassandra\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject unknown store backend")
	}
}

func TestLoadConfigInvalidCanvas(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[canvas]\nwidth = -10\nheight = 100\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject non-positive canvas dimensions")
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("store = [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadConfig(path); err == nil {
		t.Error("LoadConfig() should reject malformed TOML")
	}
}
