package pipeline

import (
	"context"
	"fmt"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/render/nodelink"
	"github.com/matzehuels/assetgrid/pkg/render/sink"
)

// Render produces every requested format from l.
func Render(ctx context.Context, l grid.Layout, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := RenderFormat(ctx, l, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// RenderFormat produces a single format from l.
func RenderFormat(ctx context.Context, l grid.Layout, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatSVG:
		return sink.RenderSVG(l, sink.WithCanvas(opts.Canvas)), nil
	case FormatPNG:
		return sink.RenderPNG(ctx, l,
			sink.WithPNGCanvas(opts.Canvas),
			sink.WithScale(opts.Scale),
			sink.WithEngine(opts.Engine),
		)
	case FormatHTML:
		return sink.RenderHTML(l, sink.WithHTMLCanvas(opts.Canvas))
	case FormatJSON:
		return sink.RenderJSON(l, opts.Canvas)
	case FormatGraph:
		dot := nodelink.ToDOT(CategoriesOf(l), nodelink.Options{Title: l.Title, Params: opts.Params})
		return nodelink.RenderSVG(ctx, dot)
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// CategoriesOf rebuilds the category list of l, including rows without
// assets.
func CategoriesOf(l grid.Layout) []catalog.Category {
	cats := make([]catalog.Category, len(l.Categories))
	for i, name := range l.Categories {
		cats[i].Name = name
	}
	for _, m := range l.Markers {
		if m.Row < 0 || m.Row >= len(cats) {
			continue
		}
		a := m.Asset
		a.Category = m.Category
		cats[m.Row].Assets = append(cats[m.Row].Assets, a)
	}
	return cats
}
