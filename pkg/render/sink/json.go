package sink

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/assetgrid/pkg/grid"
)

type jsonOutput struct {
	Canvas grid.Canvas `json:"canvas"`
	grid.Layout
	Pixels jsonPixels `json:"pixels"`
}

type jsonPixels struct {
	Shapes  []jsonBox   `json:"shapes"`
	Markers []jsonPoint `json:"markers"`
}

type jsonBox struct {
	Kind   string  `json:"kind"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type jsonPoint struct {
	File string  `json:"file"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// RenderJSON exports the layout in data coordinates together with its pixel
// projection on c.
func RenderJSON(l grid.Layout, c grid.Canvas) ([]byte, error) {
	c = c.WithDefaults()
	out := jsonOutput{Canvas: c, Layout: l}

	for _, s := range l.Shapes {
		x, y, w, h := c.Rect(l, s)
		out.Pixels.Shapes = append(out.Pixels.Shapes, jsonBox{Kind: s.Kind, X: round(x), Y: round(y), Width: round(w), Height: round(h)})
	}
	for _, m := range l.Markers {
		out.Pixels.Markers = append(out.Pixels.Markers, jsonPoint{File: m.Asset.File, X: round(c.X(l, m.X)), Y: round(c.Y(l, m.Y))})
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func round(f float64) float64 {
	if f < 0 {
		return -float64(int64(-f*100+0.5)) / 100
	}
	return float64(int64(f*100+0.5)) / 100
}
