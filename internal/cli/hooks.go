package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/assetgrid/pkg/observability"
)

// traceHooks logs pipeline, cache and HTTP events at debug level.
type traceHooks struct {
	logger *log.Logger
}

func (h traceHooks) OnLayoutComplete(_ context.Context, rows, columns int, d time.Duration) {
	h.logger.Debug("layout", "rows", rows, "columns", columns, "duration", d.Round(time.Microsecond))
}

func (h traceHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("render start", "format", format)
}

func (h traceHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("render done", "format", format, "bytes", size, "duration", d.Round(time.Microsecond))
}

func (h traceHooks) OnExportComplete(_ context.Context, path string, assets int, d time.Duration, err error) {
	h.logger.Debug("export", "path", path, "assets", assets, "duration", d.Round(time.Microsecond), "error", err)
}

func (h traceHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "key", keyType)
}

func (h traceHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "key", keyType)
}

func (h traceHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "key", keyType, "bytes", size)
}

func (h traceHooks) OnRequest(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("http", "method", method, "path", path, "status", status, "duration", d.Round(time.Microsecond))
}

// EnableTracing routes pipeline, cache and HTTP events to the CLI logger.
func (c *CLI) EnableTracing() {
	h := traceHooks{logger: c.Logger}
	observability.SetPipelineHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}
