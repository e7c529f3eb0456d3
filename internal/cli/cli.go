package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bannersmith/pkg/buildinfo"
	"github.com/matzehuels/bannersmith/pkg/cache"
	"github.com/matzehuels/bannersmith/pkg/images"
	"github.com/matzehuels/bannersmith/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bannersmith"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "bannersmith",
		Short:        "Bannersmith composes and exports partner ad banners",
		Long:         `Bannersmith is a CLI tool for composing partner ad banners from text, call-to-action, and logo assets, editing them interactively, and exporting them as PNG or JPEG artifacts.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "path to config file (default ~/.config/bannersmith/config.toml)")

	// Register all subcommands
	root.AddCommand(c.seedCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the effective configuration for the current invocation.
func (c *CLI) config() (Config, error) {
	return LoadConfig(c.configPath)
}

// =============================================================================
// Backend Factories
// =============================================================================

// newStore opens the persistence backend selected by the config.
func (c *CLI) newStore(ctx context.Context, cfg Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "memory":
		return store.NewMemoryStore(), nil
	case "redis":
		return store.NewRedisStore(ctx, cfg.Store.RedisAddr)
	case "mongo":
		return store.NewMongoStore(ctx, cfg.Store.MongoURI)
	default:
		dir := cfg.Store.Dir
		if dir == "" {
			base, err := dataDir()
			if err != nil {
				return nil, err
			}
			dir = base
		}
		return store.NewFileStore(dir)
	}
}

// newLoader creates the remote image loader with the configured trust list
// and download cache.
func (c *CLI) newLoader(cfg Config) *images.Loader {
	return images.NewLoader(images.LoaderConfig{
		TrustedOrigins: cfg.Images.TrustedOrigins,
		Cache:          newImageCache(cfg.Images.NoCache),
		Logger:         c.Logger,
	})
}

func newImageCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache()
	}
	return fc
}
