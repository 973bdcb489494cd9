package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/flow/pkg/buildinfo"
	"github.com/matzehuels/flow/pkg/cache"
	"github.com/matzehuels/flow/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "flow"

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
	Config Config

	// Out receives status lines and command output; Err receives the
	// spinner.
	Out io.Writer
	Err io.Writer

	configFile string
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
// The config file is loaded before any subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Flow solves box layouts for a viewport",
		Long: `Flow is a layout engine for trees of boxes: fixed, fit-content and
flexible blocks arranged in rows. Given a tree document and a viewport it
computes every node's size and position.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/flow/config.toml)")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default path when the flag is unset.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	path, required := c.configFile, cmd.Flags().Changed("config")
	if !required {
		p, err := configPath()
		if err != nil {
			c.Logger.Debug("no config path", "err", err)
			return nil
		}
		path = p
	}
	cfg, err := LoadConfig(path, required)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "path", path, "backend", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(cc, nil, c.Logger)
	ttl, err := c.Config.TTL()
	if err != nil {
		return nil, err
	}
	if ttl > 0 {
		runner.SnapshotTTL = ttl
		runner.ArtifactTTL = ttl
	}
	return runner, nil
}

// newCache opens the configured cache backend. A file cache whose
// directory cannot be determined degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	opts := c.Config.CacheOptions("")
	if opts.Backend == "" || opts.Backend == cache.BackendFile {
		dir, err := cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	cc, err := cache.Open(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return cc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// solveFlags are the viewport flags shared by solve and watch.
type solveFlags struct {
	width  float64
	height float64
	ids    string
}

func (f *solveFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", pipeline.DefaultWidth, "viewport width")
	cmd.Flags().Float64Var(&f.height, "height", pipeline.DefaultHeight, "viewport height")
	cmd.Flags().StringVar(&f.ids, "ids", pipeline.DefaultIDs, "node id source: sequence, uuid")
}

// apply copies flags into opts, falling back to the config file for flags
// not given on the command line.
func (c *CLI) apply(cmd *cobra.Command, f solveFlags, opts *pipeline.Options) {
	opts.Width, opts.Height, opts.IDs = f.width, f.height, f.ids
	if !cmd.Flags().Changed("width") {
		opts.Width = c.Config.Viewport.Width
	}
	if !cmd.Flags().Changed("height") {
		opts.Height = c.Config.Viewport.Height
	}
	if !cmd.Flags().Changed("ids") && c.Config.IDs.Source != "" {
		opts.IDs = c.Config.IDs.Source
	}
	opts.Logger = c.Logger
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
