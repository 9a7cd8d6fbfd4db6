package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/assetgrid/pkg/fonts"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/render"
)

const titleFontSize = 17

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	canvas grid.Canvas
	hover  bool
}

// WithCanvas sets the canvas size and margins.
func WithCanvas(c grid.Canvas) SVGOption { return func(r *svgRenderer) { r.canvas = c } }

// WithoutHover omits the hover markers.
func WithoutHover() SVGOption { return func(r *svgRenderer) { r.hover = false } }

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{canvas: grid.DefaultCanvas(), hover: true}
	for _, opt := range opts {
		opt(&r)
	}
	r.canvas = r.canvas.WithDefaults()
	return r
}

// RenderSVG renders the layout as a standalone SVG document.
func RenderSVG(l grid.Layout, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	c := r.canvas

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s" font-family="%s">`+"\n",
		num(c.Width), num(c.Height), num(c.Width), num(c.Height), escapeXML(fonts.FontFamily))
	fmt.Fprintf(&buf, `  <rect class="background" width="%s" height="%s"%s/>`+"\n", num(c.Width), num(c.Height), paint("fill", c.Background))
	fmt.Fprintf(&buf, `  <text class="title" x="%s" y="%s" font-size="%d" text-anchor="middle" dominant-baseline="central">%s</text>`+"\n",
		num(c.Width/2), num(c.MarginTop/2), titleFontSize, escapeXML(l.Title))

	fmt.Fprintf(&buf, `  <g class="plot" data-x-range="%s %s" data-y-range="%s %s">`+"\n",
		num(l.XRange[0]), num(l.XRange[1]), num(l.YRange[0]), num(l.YRange[1]))
	for _, s := range l.Shapes {
		renderRect(&buf, c, l, s)
	}
	for _, t := range l.Annotations {
		renderText(&buf, c, l, t)
	}
	if r.hover {
		for _, m := range l.Markers {
			renderMarker(&buf, c, l, m)
		}
	}
	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderRect(buf *bytes.Buffer, c grid.Canvas, l grid.Layout, s grid.Rect) {
	x, y, w, h := c.Rect(l, s)
	fmt.Fprintf(buf, `    <rect class="%s" x="%s" y="%s" width="%s" height="%s"%s%s stroke-width="%s"/>`+"\n",
		s.Kind, num(x), num(y), num(w), num(h), paint("fill", s.Fill), paint("stroke", s.Stroke), num(s.StrokeWidth))
}

func renderText(buf *bytes.Buffer, c grid.Canvas, l grid.Layout, t grid.Text) {
	weight := ""
	if t.Bold {
		weight = ` font-weight="bold"`
	}
	fmt.Fprintf(buf, `    <text x="%s" y="%s" font-size="%s"%s%s text-anchor="%s" dominant-baseline="central">%s</text>`+"\n",
		num(c.X(l, t.X)), num(c.Y(l, t.Y)), num(t.Size), weight, paint("fill", t.Color), textAnchor(t.XAnchor), escapeXML(t.Text))
}

func renderMarker(buf *bytes.Buffer, c grid.Canvas, l grid.Layout, m grid.Marker) {
	fmt.Fprintf(buf, `    <circle class="marker" cx="%s" cy="%s" r="%s"%s><title>%s</title></circle>`+"\n",
		num(c.X(l, m.X)), num(c.Y(l, m.Y)), num(m.Size/2), paint("fill", m.Color), escapeXML(strings.Join(m.HoverLines(), "\n")))
}

func textAnchor(a string) string {
	switch a {
	case grid.AnchorRight:
		return "end"
	case grid.AnchorLeft:
		return "start"
	default:
		return "middle"
	}
}

// paint writes a colour attribute, splitting alpha into an opacity attribute.
func paint(attr, s string) string {
	hex, alpha := render.Hex(render.MustColor(s))
	if alpha >= 1 {
		return fmt.Sprintf(` %s="%s"`, attr, hex)
	}
	return fmt.Sprintf(` %s="%s" %s-opacity="%s"`, attr, hex, attr, num(alpha))
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	s := fmt.Sprintf("%.2f", f)
	s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	if s == "-0" {
		return "0"
	}
	return s
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
