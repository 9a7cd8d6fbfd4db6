// Package sink provides output format renderers for asset grid layouts.
//
// # Overview
//
// A "sink" transforms a computed [grid.Layout] into a final output format:
//
//   - SVG: vector image with native tooltips on each asset
//   - PNG: raster image, drawn in process or converted with rsvg-convert
//   - HTML: interactive scatter preview built on ECharts
//   - JSON: the layout itself, projected onto the canvas
//
// Every sink projects data coordinates through the same [grid.Canvas], so
// geometry is identical across formats. Output is deterministic: the same
// layout and options always produce the same bytes.
//
//	l := grid.Build(catalog.DefaultGrid(), grid.DefaultParams())
//	svg := sink.RenderSVG(l)
//	png, err := sink.RenderPNG(ctx, l, sink.WithScale(2))
//
// [grid.Layout]: github.com/matzehuels/assetgrid/pkg/grid.Layout
// [grid.Canvas]: github.com/matzehuels/assetgrid/pkg/grid.Canvas
package sink
