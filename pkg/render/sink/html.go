package sink

import (
	"bytes"
	"fmt"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/matzehuels/assetgrid/pkg/grid"
)

// HTMLOption configures HTML rendering.
type HTMLOption func(*htmlRenderer)

type htmlRenderer struct {
	canvas     grid.Canvas
	assetsHost string
}

// WithHTMLCanvas sets the chart size.
func WithHTMLCanvas(c grid.Canvas) HTMLOption { return func(r *htmlRenderer) { r.canvas = c } }

// WithAssetsHost sets where the ECharts script is loaded from.
func WithAssetsHost(host string) HTMLOption { return func(r *htmlRenderer) { r.assetsHost = host } }

// RenderHTML renders the layout as an interactive ECharts scatter page. Each
// asset becomes a rectangular symbol whose tooltip carries the hover text.
func RenderHTML(l grid.Layout, opts ...HTMLOption) ([]byte, error) {
	r := htmlRenderer{canvas: grid.DefaultCanvas()}
	for _, opt := range opts {
		opt(&r)
	}
	r.canvas = r.canvas.WithDefaults()

	chart := newScatter(l, r)

	var buf bytes.Buffer
	if err := chart.Render(&buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}

func newScatter(l grid.Layout, r htmlRenderer) *charts.Scatter {
	c := r.canvas
	init := opts.Initialization{
		PageTitle:       l.Title,
		Width:           fmt.Sprintf("%dpx", int(c.Width)),
		Height:          fmt.Sprintf("%dpx", int(c.Height)),
		BackgroundColor: c.Background,
		ChartID:         "assetgrid",
	}
	if r.assetsHost != "" {
		init.AssetsHost = r.assetsHost
	}

	sc := charts.NewScatter()
	sc.SetGlobalOptions(
		charts.WithInitializationOpts(init),
		charts.WithTitleOpts(opts.Title{Title: l.Title, Left: "center"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "item", Formatter: "{b}"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Min: l.XRange[0], Max: l.XRange[1], Show: opts.Bool(false)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value", Min: l.YRange[0], Max: l.YRange[1], Show: opts.Bool(false)}),
	)

	// asset rects share a size, so one symbol size fits all
	symbol := int(c.X(l, l.XRange[0]+assetWidth(l)) - c.X(l, l.XRange[0]))

	var (
		series []string
		data   = map[string][]opts.ScatterData{}
		fills  = map[string]string{}
	)
	rects := assetRects(l)
	for i, m := range l.Markers {
		if _, ok := data[m.Category]; !ok {
			series = append(series, m.Category)
		}
		data[m.Category] = append(data[m.Category], opts.ScatterData{
			Name:       m.Hover,
			Value:      []float64{m.X, m.Y},
			Symbol:     "rect",
			SymbolSize: symbol,
		})
		if i < len(rects) {
			fills[m.Category] = rects[i].Fill
		}
	}
	for _, name := range series {
		sc.AddSeries(name, data[name],
			charts.WithItemStyleOpts(opts.ItemStyle{Color: fills[name], BorderColor: "black", BorderWidth: 2}),
		)
	}
	return sc
}

func assetRects(l grid.Layout) []grid.Rect {
	var out []grid.Rect
	for _, s := range l.Shapes {
		if s.Kind == grid.KindAsset {
			out = append(out, s)
		}
	}
	return out
}

func assetWidth(l grid.Layout) float64 {
	for _, s := range l.Shapes {
		if s.Kind == grid.KindAsset {
			return s.X1 - s.X0
		}
	}
	return grid.DefaultAssetWidth
}
