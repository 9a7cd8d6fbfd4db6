package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgrid/pkg/cache"
	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/observability"
)

// Runner executes the pipeline with caching. It holds no per-run state and
// is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// TTL is the lifetime of cached entries. Zero means [cache.TTLArtifact].
	TTL time.Duration
}

// NewRunner returns a runner. Nil arguments fall back to a [cache.NullCache],
// a [cache.DefaultKeyer] and the default logger.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute lays out cats and renders the requested formats.
func (r *Runner) Execute(ctx context.Context, cats []catalog.Category, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	res := &Result{}
	res.Stats.Categories = len(cats)
	res.Stats.Assets = catalog.CountAssets(cats)

	start := time.Now()
	l, hit, err := r.LayoutWithCacheInfo(ctx, cats, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	res.Layout = l
	res.Stats.LayoutTime = time.Since(start)
	res.CacheInfo.LayoutHit = hit
	observability.Pipeline().OnLayoutComplete(ctx, l.Rows, l.Columns, res.Stats.LayoutTime)

	r.Logger.Debug("computed layout",
		"rows", l.Rows,
		"columns", l.Columns,
		"cached", hit,
		"duration", res.Stats.LayoutTime)

	layoutHash, err := cache.HashJSON(l)
	if err != nil {
		return nil, fmt.Errorf("hash layout: %w", err)
	}
	res.LayoutHash = layoutHash

	start = time.Now()
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, layoutHash, opts)
	if err != nil {
		return nil, err
	}
	res.Artifacts = artifacts
	res.Stats.RenderTime = time.Since(start)
	res.CacheInfo.RenderHit = hit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"cached", hit,
		"duration", res.Stats.RenderTime)

	return res, nil
}

// LayoutWithCacheInfo computes the layout of cats, consulting the cache.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, cats []catalog.Category, opts Options) (grid.Layout, bool, error) {
	catHash, err := cache.HashJSON(cats)
	if err != nil {
		return grid.Layout{}, false, fmt.Errorf("hash catalog: %w", err)
	}
	key := r.Keyer.LayoutKey(catHash, opts.LayoutKeyOpts())

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var l grid.Layout
			if err := json.Unmarshal(data, &l); err == nil {
				observability.Cache().OnCacheHit(ctx, "layout")
				return l, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "layout")
	}

	l := grid.Build(cats, opts.Params)

	if data, err := json.Marshal(l); err == nil {
		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "key", "layout", "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "layout", len(data))
		}
	}
	return l, false, nil
}

// RenderWithCacheInfo renders every format of opts, serving each from the
// cache when possible. The returned bool is true when all formats hit.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l grid.Layout, layoutHash string, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	allHit := true

	for _, format := range opts.Formats {
		key := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))

		if !opts.Refresh {
			if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
				observability.Cache().OnCacheHit(ctx, "artifact")
				artifacts[format] = data
				continue
			}
			observability.Cache().OnCacheMiss(ctx, "artifact")
		}
		allHit = false

		observability.Pipeline().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := RenderFormat(ctx, l, format, opts)
		observability.Pipeline().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, false, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data

		if err := r.Cache.Set(ctx, key, data, r.ttl()); err != nil {
			r.Logger.Warn("cache write failed", "format", format, "error", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return artifacts, allHit, nil
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}

// Close releases the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
