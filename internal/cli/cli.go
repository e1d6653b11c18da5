// Package cli implements the specview command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/specview/specview/pkg/buildinfo"
	"github.com/specview/specview/pkg/cache"
	"github.com/specview/specview/pkg/errors"
	"github.com/specview/specview/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "specview"

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
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "specview",
		Short:        "Specview prepares labeled data volumes for display",
		Long:         `Specview validates axis roles of N-dimensional instrument data, rearranges the dimensions into the canonical viewer order, scales magnitudes into a legible range, and hands the result to the matching viewer.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, nil, c.Logger), nil
}

// newServeRunner creates a pipeline runner for the HTTP service. With a
// Redis address, cached results go to the shared backend so several
// replicas reuse each other's analyses; otherwise the local file cache
// from newRunner applies.
func (c *CLI) newServeRunner(ctx context.Context, noCache bool, redis cache.RedisConfig) (*pipeline.Runner, error) {
	if redis.Addr == "" {
		return c.newRunner(noCache)
	}
	if noCache {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"--no-cache and --redis-addr are mutually exclusive")
	}
	rc, err := cache.NewRedisCache(ctx, redis)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(rc, nil, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/specview/).
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
