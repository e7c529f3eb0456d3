package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bannersmith/pkg/banner"
	"github.com/matzehuels/bannersmith/pkg/errors"
)

// =============================================================================
// Configuration
// =============================================================================

// Config holds user configuration loaded from the TOML config file.
// Every field has a working default; a missing config file is not an error.
type Config struct {
	Store  StoreConfig  `toml:"store"`
	Images ImagesConfig `toml:"images"`
	Canvas CanvasConfig `toml:"canvas"`
	Brand  BrandConfig  `toml:"brand"`
	Serve  ServeConfig  `toml:"serve"`
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	// Backend is one of "file", "redis", "mongo", or "memory".
	Backend string `toml:"backend"`

	// Dir is the document directory for the file backend.
	// Defaults to the XDG data directory.
	Dir string `toml:"dir"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `toml:"mongo_uri"`
}

// ImagesConfig controls remote image loading.
type ImagesConfig struct {
	// TrustedOrigins lists hosts whose pixels may be serialized directly.
	// "*" trusts every origin.
	TrustedOrigins []string `toml:"trusted_origins"`

	// NoCache disables the on-disk download cache.
	NoCache bool `toml:"no_cache"`
}

// CanvasConfig sets the default canvas dimensions for new compositions.
type CanvasConfig struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// BrandConfig carries partner branding used for seeding and export naming.
type BrandConfig struct {
	PartnerName string   `toml:"partner_name"`
	Colors      []string `toml:"colors"`
}

// ServeConfig configures the HTTP server.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{
			Backend:   "file",
			RedisAddr: "localhost:6379",
			MongoURI:  "mongodb://localhost:27017",
		},
		Images: ImagesConfig{
			TrustedOrigins: []string{"*"},
		},
		Canvas: CanvasConfig{
			Width:  banner.DefaultCanvasWidth,
			Height: banner.DefaultCanvasHeight,
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads the TOML config at path. An empty path uses the default
// location (~/.config/bannersmith/config.toml); a missing file yields the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		dir, err := configDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(dir, "config.toml")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "reading config %s", path)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parsing config %s", path)
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Store.Backend {
	case "file", "redis", "mongo", "memory":
	default:
		return errors.New(errors.ErrCodeInvalidConfig,
			"unknown store backend %q (must be file, redis, mongo, or memory)", c.Store.Backend)
	}
	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "canvas dimensions must be positive")
	}
	return nil
}

// canvasSize returns the configured canvas dimensions.
func (c Config) canvasSize() banner.Size {
	return banner.Size{Width: c.Canvas.Width, Height: c.Canvas.Height}
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/bannersmith/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/bannersmith/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// dataDir returns the data directory using XDG standard (~/.local/share/bannersmith/).
func dataDir() (string, error) {
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		return filepath.Join(dataHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", appName), nil
}
