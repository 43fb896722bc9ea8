package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/hilbertmaze/pkg/buildinfo"
	"github.com/matzehuels/hilbertmaze/pkg/cache"
	"github.com/matzehuels/hilbertmaze/pkg/config"
	"github.com/matzehuels/hilbertmaze/pkg/observability"
	"github.com/matzehuels/hilbertmaze/pkg/observability/prom"
	"github.com/matzehuels/hilbertmaze/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "hilbertmaze"

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

	configPath  string
	metricsPath string
	metrics     *prom.Metrics
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
		Use:   appName,
		Short: "Hilbertmaze paints random spanning-tree mazes with a Hilbert-curve palette",
		Long: `Hilbertmaze builds a random spanning tree over a toroidal grid, walks it
depth-first from a random start, and colors every cell by its visit order
mapped through a 3D Hilbert curve into the RGB cube.

The same scale and seed always produce the same image.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.before,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return c.flushMetrics()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&c.metricsPath, "metrics", "", "write Prometheus metrics in textfile format to this path")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.treeCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// before attaches the logger to the command context and installs metric
// hooks when --metrics is set.
func (c *CLI) before(cmd *cobra.Command, args []string) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if c.metricsPath == "" {
		return nil
	}
	c.metrics = prom.New()
	observability.SetPipelineHooks(c.metrics)
	observability.SetCacheHooks(c.metrics)
	return nil
}

func (c *CLI) flushMetrics() error {
	if c.metrics == nil {
		return nil
	}
	if err := c.metrics.WriteTextfile(c.metricsPath); err != nil {
		return err
	}
	c.Logger.Debug("wrote metrics", "path", c.metricsPath)
	return nil
}

// loadConfig reads the --config file, or the default location when unset.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(cfg config.Config) (*pipeline.Runner, error) {
	ttl, err := cfg.TTL()
	if err != nil {
		return nil, err
	}
	store, err := newCache(cfg.NoCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, cache.NewScopedKeyer(nil, buildinfo.CacheScope()), c.Logger)
	r.TTL = ttl
	return r, nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewDirCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/hilbertmaze/).
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
