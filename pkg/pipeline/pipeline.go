// Package pipeline runs the layout → render steps of the asset grid chart.
//
// The CLI, the preview server and the watcher all go through [Runner], so
// they share defaults, validation and caching.
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Execute(ctx, catalog.DefaultGrid(), pipeline.Options{
//	    Formats: []string{pipeline.FormatPNG, pipeline.FormatSVG},
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
package pipeline

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgrid/pkg/cache"
	"github.com/matzehuels/assetgrid/pkg/errors"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/render/sink"
)

// DefaultBaseName is the file name stem of the rendered chart.
const DefaultBaseName = "asset_grid"

// Output formats.
const (
	FormatSVG   = "svg"
	FormatPNG   = "png"
	FormatHTML  = "html"
	FormatJSON  = "json"
	FormatGraph = "graph"
)

// AllFormats lists every supported format in render order.
var AllFormats = []string{FormatPNG, FormatSVG, FormatHTML, FormatJSON, FormatGraph}

// DefaultFormats are the two images written when no format is requested.
var DefaultFormats = []string{FormatPNG, FormatSVG}

// ValidateFormat checks that format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(AllFormats, format) {
		return fmt.Errorf("invalid format: %q (must be one of: %s)", format, strings.Join(AllFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every entry of formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateEngine checks the PNG engine name.
func ValidateEngine(engine string) error {
	switch engine {
	case sink.EngineNative, sink.EngineRSVG:
		return nil
	}
	return fmt.Errorf("invalid png engine: %q (must be one of: %s, %s)", engine, sink.EngineNative, sink.EngineRSVG)
}

// ValidateScale checks that the PNG scale lies in (0, sink.MaxScale].
func ValidateScale(scale float64) error {
	if !(scale > 0 && scale <= sink.MaxScale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in (0, %d], got %v", sink.MaxScale, scale)
	}
	return nil
}

// Options configures one pipeline run.
type Options struct {
	Params  grid.Params `json:"params"`
	Canvas  grid.Canvas `json:"canvas"`
	Formats []string    `json:"formats,omitempty"`
	Scale   float64     `json:"scale,omitempty"`
	Engine  string      `json:"engine,omitempty"`

	// Refresh bypasses cache reads. Results are still written back.
	Refresh bool `json:"refresh,omitempty"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills defaults and validates the result.
func (o *Options) ValidateAndSetDefaults() error {
	o.Params = o.Params.WithDefaults()
	o.Canvas = o.Canvas.WithDefaults()
	if len(o.Formats) == 0 {
		o.Formats = slices.Clone(DefaultFormats)
	}
	if o.Scale == 0 {
		o.Scale = 1
	}
	if err := ValidateScale(o.Scale); err != nil {
		return err
	}
	if o.Engine == "" {
		o.Engine = sink.EngineNative
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	return ValidateEngine(o.Engine)
}

// LayoutKeyOpts returns the cache key inputs for the layout.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{Params: o.Params}
}

// ArtifactKeyOpts returns the cache key inputs for one format.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatPNG:
		k.Scale, k.Engine, k.Canvas = o.Scale, o.Engine, o.Canvas
	case FormatSVG, FormatHTML, FormatJSON:
		k.Canvas = o.Canvas
	}
	return k
}

// Result holds the outputs of a run.
type Result struct {
	Layout     grid.Layout
	LayoutHash string
	Artifacts  map[string][]byte
	Stats      Stats
	CacheInfo  CacheInfo
}

// Stats holds timing and size information.
type Stats struct {
	Categories int
	Assets     int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo records which steps were served from the cache.
type CacheInfo struct {
	LayoutHit bool
	RenderHit bool // every requested format was cached
}
