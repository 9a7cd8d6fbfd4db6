// Package config loads assetgrid.toml.
//
// Every field has a default matching the built-in behaviour, so a missing
// config file is not an error. Command-line flags override file values.
//
//	[output]
//	dir = "public/images"
//	formats = ["png", "svg", "html"]
//	scale = 2
//
//	[layout]
//	title = "MIS Alliance Assets"
//	row_height = 1.5
//
//	[layout.colors]
//	"Brand Identity" = "#D3D3D3"
//
//	[cache]
//	backend = "redis"
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/assetgrid/pkg/cache"
	"github.com/matzehuels/assetgrid/pkg/errors"
	"github.com/matzehuels/assetgrid/pkg/export"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/pipeline"
	"github.com/matzehuels/assetgrid/pkg/render/sink"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "assetgrid.toml"

// Cache backends.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendNone  = "none"
)

type Config struct {
	Output  Output      `toml:"output"`
	Catalog Catalog     `toml:"catalog"`
	Layout  grid.Params `toml:"layout"`
	Canvas  grid.Canvas `toml:"canvas"`
	Export  Export      `toml:"export"`
	Cache   Cache       `toml:"cache"`
	Server  Server      `toml:"server"`
	Mongo   Mongo       `toml:"mongo"`
	Watch   Watch       `toml:"watch"`
}

type Output struct {
	Dir             string   `toml:"dir"`
	GridBasename    string   `toml:"grid_basename"`
	CatalogFilename string   `toml:"catalog_filename"`
	Formats         []string `toml:"formats"`
	Scale           float64  `toml:"scale"`
	PNGEngine       string   `toml:"png_engine"`
}

// Catalog points at optional catalog files replacing the built-in literals.
type Catalog struct {
	Grid     string `toml:"grid"`
	Document string `toml:"document"`
}

type Export struct {
	Exclude []string `toml:"exclude"`
}

type Cache struct {
	Backend  string        `toml:"backend"`
	Dir      string        `toml:"dir"`
	RedisURL string        `toml:"redis_url"`
	Prefix   string        `toml:"prefix"`
	TTL      time.Duration `toml:"ttl"`
}

type Server struct {
	Addr string `toml:"addr"`
}

type Mongo struct {
	URI        string        `toml:"uri"`
	Database   string        `toml:"database"`
	Collection string        `toml:"collection"`
	Timeout    time.Duration `toml:"timeout"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Output: Output{
			Dir:             ".",
			GridBasename:    pipeline.DefaultBaseName,
			CatalogFilename: export.DefaultFilename,
			Formats:         slices.Clone(pipeline.DefaultFormats),
			Scale:           1,
			PNGEngine:       sink.EngineNative,
		},
		Layout: grid.DefaultParams(),
		Canvas: grid.DefaultCanvas(),
		Export: Export{Exclude: slices.Clone(export.DefaultExcluded)},
		Cache: Cache{
			Backend: BackendFile,
			Prefix:  "assetgrid:",
			TTL:     cache.TTLArtifact,
		},
		Server: Server{Addr: "127.0.0.1:8080"},
		Mongo: Mongo{
			URI:        "mongodb://localhost:27017",
			Database:   "assetgrid",
			Collection: "assets",
			Timeout:    10 * time.Second,
		},
		Watch: Watch{Debounce: 200 * time.Millisecond},
	}
}

// Load reads path over the defaults. When path is empty, DefaultPath is read
// if it exists.
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err) && !explicit:
		return Default(), nil
	case os.IsNotExist(err):
		return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
	case err != nil:
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(string(data), path)
}

// Parse decodes TOML over the defaults. name labels errors.
func Parse(data, name string) (Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, &cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", name)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", name, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values that the decoder cannot.
func (c Config) Validate() error {
	if err := pipeline.ValidateFormats(c.Output.Formats); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.formats")
	}
	if err := pipeline.ValidateEngine(c.Output.PNGEngine); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.png_engine")
	}
	if err := pipeline.ValidateScale(c.Output.Scale); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.scale")
	}
	if err := errors.ValidateOutputName(c.Output.GridBasename); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "output.grid_basename")
	}
	switch c.Cache.Backend {
	case BackendFile, BackendNone:
	case BackendRedis:
		if c.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Layout.RowHeight < 0 || c.Layout.AssetSpacing < 0 || c.Layout.AssetWidth < 0 || c.Layout.AssetHeight < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "layout sizes must not be negative")
	}
	if c.Layout.XRange[0] >= c.Layout.XRange[1] || c.Layout.YRange[0] >= c.Layout.YRange[1] {
		return errors.New(errors.ErrCodeInvalidConfig, "layout ranges must be increasing")
	}
	return nil
}

// PipelineOptions converts the config to render options.
func (c Config) PipelineOptions() pipeline.Options {
	return pipeline.Options{
		Params:  c.Layout,
		Canvas:  c.Canvas,
		Formats: slices.Clone(c.Output.Formats),
		Scale:   c.Output.Scale,
		Engine:  c.Output.PNGEngine,
	}
}

// Write encodes c as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
