package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/assetgrid/pkg/errors"
)

func TestDefault(t *testing.T) {
	c := Default()
	if err := c.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if diff := cmp.Diff([]string{"png", "svg"}, c.Output.Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}
	if c.Output.CatalogFilename != "misjustice_media_assets_catalog.json" || c.Output.GridBasename != "asset_grid" {
		t.Errorf("output = %+v", c.Output)
	}
	if c.Layout.YStart != 4 || c.Canvas.Width != 700 {
		t.Error("layout/canvas not defaulted")
	}
}

func TestParse(t *testing.T) {
	src := `
[output]
dir = "public"
formats = ["svg", "html"]
scale = 2

[layout]
title = "Assets"
row_height = 2.0

[layout.colors]
"Brand Identity" = "#FF0000"

[cache]
backend = "redis"
redis_url = "redis://localhost:6379/1"
ttl = "1h"

[watch]
debounce = "50ms"
`
	c, err := Parse(src, "test.toml")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Output.Dir != "public" || c.Output.Scale != 2 {
		t.Errorf("output = %+v", c.Output)
	}
	if diff := cmp.Diff([]string{"svg", "html"}, c.Output.Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}
	if c.Layout.Title != "Assets" || c.Layout.RowHeight != 2 || c.Layout.AssetSpacing != 1.5 {
		t.Errorf("layout = %+v", c.Layout)
	}
	if c.Layout.Colors["Brand Identity"] != "#FF0000" {
		t.Errorf("colors = %v", c.Layout.Colors)
	}
	if c.Cache.TTL != time.Hour || c.Watch.Debounce != 50*time.Millisecond {
		t.Errorf("durations = %v %v", c.Cache.TTL, c.Watch.Debounce)
	}
	if c.Output.CatalogFilename != "misjustice_media_assets_catalog.json" {
		t.Error("unset keys should keep defaults")
	}

	opts := c.PipelineOptions()
	if opts.Scale != 2 || opts.Params.RowHeight != 2 || len(opts.Formats) != 2 {
		t.Errorf("PipelineOptions() = %+v", opts)
	}
}

func TestParseKeepsZeroLayoutValues(t *testing.T) {
	cfg, err := Parse("[layout]\ny_start = 0\nasset_spacing = 0", "test.toml")
	if err != nil {
		t.Fatal(err)
	}
	opts := cfg.PipelineOptions()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Params.YStart != 0 || opts.Params.AssetSpacing != 0 {
		t.Errorf("y_start = %v, asset_spacing = %v, want 0", opts.Params.YStart, opts.Params.AssetSpacing)
	}
	if opts.Params.RowHeight != 1.5 {
		t.Errorf("row_height = %v, want default", opts.Params.RowHeight)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", "[output", "parse"},
		{"unknown key", "[output]\ncolour = 1", "unknown keys: output.colour"},
		{"bad format", "[output]\nformats = [\"gif\"]", "output.formats"},
		{"bad engine", "[output]\npng_engine = \"cairo\"", "png_engine"},
		{"bad scale", "[output]\nscale = -1", "scale"},
		{"huge scale", "[output]\nscale = 1e9", "scale"},
		{"bad backend", "[cache]\nbackend = \"memcached\"", "cache.backend"},
		{"redis without url", "[cache]\nbackend = \"redis\"", "redis_url"},
		{"bad range", "[layout]\nx_range = [4.0, -1.0]", "ranges"},
		{"bad basename", "[output]\ngrid_basename = \"a/b\"", "grid_basename"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.src, "test.toml")
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %s, want INVALID_CONFIG", errors.GetCode(err))
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("explicit missing file: %v", err)
	}

	path := filepath.Join(dir, "assetgrid.toml")
	if err := os.WriteFile(path, []byte("[server]\naddr = \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Server.Addr != ":9000" {
		t.Errorf("addr = %q", c.Server.Addr)
	}
}

func TestLoadDefaultPathMissing(t *testing.T) {
	t.Chdir(t.TempDir())
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") without file: %v", err)
	}
	if c.Server.Addr != Default().Server.Addr {
		t.Error("expected defaults")
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatal(err)
	}
	back, err := Parse(buf.String(), "roundtrip")
	if err != nil {
		t.Fatalf("re-parse: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(Default(), back); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestExampleConfig(t *testing.T) {
	cfg, err := Load("../../examples/assetgrid.toml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Output.Scale != 2 || cfg.Catalog.Grid != "examples/grid.yaml" {
		t.Errorf("output/catalog not applied: %+v %+v", cfg.Output, cfg.Catalog)
	}
	if cfg.Cache.TTL != 72*time.Hour || cfg.Watch.Debounce != 300*time.Millisecond {
		t.Errorf("durations: ttl %v, debounce %v", cfg.Cache.TTL, cfg.Watch.Debounce)
	}
	if cfg.Layout.Colors["Social Media"] != "#707070" || cfg.Layout.Colors["Brand Identity"] != "#D3D3D3" {
		t.Errorf("colors = %v", cfg.Layout.Colors)
	}
}
