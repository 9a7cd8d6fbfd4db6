package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/assetgrid/pkg/buildinfo"
	"github.com/matzehuels/assetgrid/pkg/cache"
	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/config"
	"github.com/matzehuels/assetgrid/pkg/pipeline"
)

const appName = "assetgrid"

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
	Config config.Config

	configPath string
	noCache    bool
}

// New creates a CLI with a default logger and the built-in configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "assetgrid catalogs the media assets of a static site",
		Long:         `assetgrid renders a grid chart of the site's image assets by category and exports the media catalog as JSON together with an implementation checklist.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default ./"+config.DefaultPath+" if present)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the render cache")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.buildCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.publishCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	store, keyer, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, keyer, c.Logger)
	r.TTL = c.Config.Cache.TTL
	return r, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, cache.Keyer, error) {
	cfg := c.Config.Cache
	if c.noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache(), nil, nil
	}
	if cfg.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL, cfg.Prefix)
		if err != nil {
			return nil, nil, err
		}
		return rc, nil, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, cache.NewScopedKeyer(nil, cfg.Prefix), nil
}

// cacheDir returns the configured cache directory or the per-user default
// (~/.cache/assetgrid, honouring XDG_CACHE_HOME).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Catalog Loading
// =============================================================================

// loadGrid returns the grid catalog from path, the configured file, or the
// built-in literal, in that order.
func (c *CLI) loadGrid(path string) ([]catalog.Category, error) {
	if path == "" {
		path = c.Config.Catalog.Grid
	}
	if path == "" {
		return catalog.DefaultGrid(), nil
	}
	c.Logger.Debug("loading grid catalog", "path", path)
	return catalog.LoadGrid(path)
}

// loadDocument is the media document counterpart of loadGrid.
func (c *CLI) loadDocument(path string) (*catalog.Document, error) {
	if path == "" {
		path = c.Config.Catalog.Document
	}
	if path == "" {
		return catalog.DefaultDocument(), nil
	}
	c.Logger.Debug("loading media catalog", "path", path)
	return catalog.LoadDocument(path)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats splits a comma-separated format list. Empty input yields nil
// so the configured formats apply.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// renderFlags are the flags shared by render, build, watch and serve.
type renderFlags struct {
	grid    string
	formats string
	scale   float64
	engine  string
	refresh bool
}

func (f *renderFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.grid, "grid", "", "grid catalog file (YAML or JSON)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): "+strings.Join(pipeline.AllFormats, ", ")+" (comma-separated)")
	cmd.Flags().Float64Var(&f.scale, "scale", 0, "PNG scale factor")
	cmd.Flags().StringVar(&f.engine, "png-engine", "", "PNG engine: native, rsvg")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "ignore cached results")
}

// options merges flags over the configured pipeline options.
func (c *CLI) options(f renderFlags) (pipeline.Options, error) {
	opts := c.Config.PipelineOptions()
	if formats := parseFormats(f.formats); formats != nil {
		opts.Formats = formats
	}
	if f.scale != 0 {
		opts.Scale = f.scale
	}
	if f.engine != "" {
		opts.Engine = f.engine
	}
	opts.Refresh = f.refresh
	opts.Logger = c.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}
