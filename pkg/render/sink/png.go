package sink

import (
	"bytes"
	"context"
	"fmt"

	"github.com/fogleman/gg"

	"github.com/matzehuels/assetgrid/pkg/fonts"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/render"
)

// PNG rasterisation engines.
const (
	EngineNative = "native"
	EngineRSVG   = "rsvg"
)

// MaxScale is the largest accepted PNG scale factor.
const MaxScale = 8

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	canvas  grid.Canvas
	scale   float64
	engine  string
	svgOpts []SVGOption
}

// WithPNGCanvas sets the canvas size and margins.
func WithPNGCanvas(c grid.Canvas) PNGOption { return func(r *pngRenderer) { r.canvas = c } }

// WithScale sets the PNG scale factor (default 1, at most [MaxScale]).
func WithScale(s float64) PNGOption { return func(r *pngRenderer) { r.scale = s } }

// WithEngine selects [EngineNative] or [EngineRSVG].
func WithEngine(e string) PNGOption { return func(r *pngRenderer) { r.engine = e } }

// WithPNGSVGOptions passes options through to the SVG renderer used by the
// rsvg engine.
func WithPNGSVGOptions(opts ...SVGOption) PNGOption {
	return func(r *pngRenderer) { r.svgOpts = opts }
}

// RenderPNG renders the layout as a PNG image.
func RenderPNG(ctx context.Context, l grid.Layout, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{canvas: grid.DefaultCanvas(), scale: 1, engine: EngineNative}
	for _, opt := range opts {
		opt(&r)
	}
	r.canvas = r.canvas.WithDefaults()
	if r.scale == 0 {
		r.scale = 1
	}
	if !(r.scale > 0 && r.scale <= MaxScale) {
		return nil, fmt.Errorf("png scale %v out of range (0, %d]", r.scale, MaxScale)
	}

	switch r.engine {
	case EngineNative, "":
		return r.native(l)
	case EngineRSVG:
		svgOpts := append([]SVGOption{WithCanvas(r.canvas)}, r.svgOpts...)
		return render.ToPNG(ctx, RenderSVG(l, svgOpts...), r.scale)
	default:
		return nil, fmt.Errorf("unknown PNG engine %q", r.engine)
	}
}

func (r pngRenderer) native(l grid.Layout) ([]byte, error) {
	c, s := r.canvas, r.scale
	dc := gg.NewContext(int(c.Width*s+0.5), int(c.Height*s+0.5))

	dc.SetColor(render.MustColor(c.Background))
	dc.Clear()

	if err := drawText(dc, l.Title, c.Width/2*s, c.MarginTop/2*s, titleFontSize*s, false, "black", 0.5); err != nil {
		return nil, err
	}

	for _, sh := range l.Shapes {
		x, y, w, h := c.Rect(l, sh)
		dc.DrawRectangle(x*s, y*s, w*s, h*s)
		dc.SetColor(render.MustColor(sh.Fill))
		dc.FillPreserve()
		dc.SetColor(render.MustColor(sh.Stroke))
		dc.SetLineWidth(sh.StrokeWidth * s)
		dc.Stroke()
	}

	for _, t := range l.Annotations {
		ax := 0.5
		switch t.XAnchor {
		case grid.AnchorRight:
			ax = 1
		case grid.AnchorLeft:
			ax = 0
		}
		if err := drawText(dc, t.Text, c.X(l, t.X)*s, c.Y(l, t.Y)*s, t.Size*s, t.Bold, t.Color, ax); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawText(dc *gg.Context, s string, x, y, size float64, bold bool, col string, ax float64) error {
	face, err := fonts.Face(size, bold)
	if err != nil {
		return err
	}
	dc.SetFontFace(face)
	dc.SetColor(render.MustColor(col))
	dc.DrawStringAnchored(s, x, y, ax, 0.5)
	return nil
}
