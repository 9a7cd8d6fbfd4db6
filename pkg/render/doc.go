// Package render turns an asset grid layout into output artifacts.
//
// # Overview
//
// Rendering is split into:
//
//   - Colour parsing shared by every sink ([ParseColor])
//   - SVG to PNG conversion through rsvg-convert ([ToPNG])
//   - Grid sinks for SVG, PNG, HTML and JSON (in [sink] subpackage)
//   - Category/asset tree diagrams through Graphviz (in [nodelink] subpackage)
//
// # Format Conversion
//
// [ToPNG] shells out to rsvg-convert (from librsvg). The PNG sink uses it
// only when the rsvg engine is selected; the default engine rasterises in
// process.
//
//	svg := sink.RenderSVG(layout)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [sink]: github.com/matzehuels/assetgrid/pkg/render/sink
// [nodelink]: github.com/matzehuels/assetgrid/pkg/render/nodelink
package render
