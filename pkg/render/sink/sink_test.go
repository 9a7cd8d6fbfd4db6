package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/matzehuels/assetgrid/pkg/catalog"
	"github.com/matzehuels/assetgrid/pkg/grid"
	"github.com/matzehuels/assetgrid/pkg/render"
)

func testLayout() grid.Layout {
	return grid.Build(catalog.DefaultGrid(), grid.DefaultParams())
}

func TestRenderSVG(t *testing.T) {
	svg := string(RenderSVG(testLayout()))

	checks := []string{
		`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 700 500" width="700" height="500"`,
		`data-x-range="-1 4"`,
		`data-y-range="0.5 5"`,
		`>MIS Alliance Assets</text>`,
		`<title>File: Logo.jpg` + "\n" + `Type: Main logo` + "\n" + `Usage: Headers</title>`,
		`fill="#F0F0F0" fill-opacity="0.3"`,
		`fill="#D3D3D3"`,
		`>Functional Icon</text>`,
		`fill="#808080"`,
		`text-anchor="end"`,
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	if got := strings.Count(svg, `class="band"`); got != 4 {
		t.Errorf("bands = %d, want 4", got)
	}
	if got := strings.Count(svg, `class="asset"`); got != 11 {
		t.Errorf("assets = %d, want 11", got)
	}
	if got := strings.Count(svg, "<circle"); got != 11 {
		t.Errorf("markers = %d, want 11", got)
	}
	if !strings.HasSuffix(svg, "</svg>\n") {
		t.Error("svg not terminated")
	}
}

func TestRenderSVGOptions(t *testing.T) {
	c := grid.DefaultCanvas()
	c.Width, c.Height = 1000, 800
	svg := string(RenderSVG(testLayout(), WithCanvas(c), WithoutHover()))

	if !strings.Contains(svg, `viewBox="0 0 1000 800"`) {
		t.Error("canvas option ignored")
	}
	if strings.Contains(svg, "<circle") {
		t.Error("markers rendered without hover")
	}
}

func TestRenderSVGEscapes(t *testing.T) {
	cats := []catalog.Category{{Name: "A & B", Assets: []catalog.Asset{{File: "<x>.png", Description: "d", Usage: "u"}}}}
	svg := string(RenderSVG(grid.Build(cats, grid.DefaultParams())))
	if !strings.Contains(svg, "A &amp; B") || !strings.Contains(svg, "&lt;x&gt;.png") {
		t.Error("text not escaped")
	}
}

func TestRenderSVGDeterministic(t *testing.T) {
	a := RenderSVG(testLayout())
	b := RenderSVG(testLayout())
	if !bytes.Equal(a, b) {
		t.Error("svg output differs between runs")
	}
}

func TestRenderPNGNative(t *testing.T) {
	tests := []struct {
		scale  float64
		width  int
		height int
	}{
		{1, 700, 500},
		{2, 1400, 1000},
		{0, 700, 500},
	}
	for _, tt := range tests {
		data, err := RenderPNG(context.Background(), testLayout(), WithScale(tt.scale))
		if err != nil {
			t.Fatalf("RenderPNG(scale=%v): %v", tt.scale, err)
		}
		img, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if b := img.Bounds(); b.Dx() != tt.width || b.Dy() != tt.height {
			t.Errorf("scale %v: size = %dx%d, want %dx%d", tt.scale, b.Dx(), b.Dy(), tt.width, tt.height)
		}
	}
}

func TestRenderPNGRejectsScale(t *testing.T) {
	for _, scale := range []float64{-1, MaxScale + 1, 1e9} {
		if _, err := RenderPNG(context.Background(), testLayout(), WithScale(scale)); err == nil {
			t.Errorf("RenderPNG(scale=%v) should fail", scale)
		}
	}
}

func TestRenderPNGDrawsBoxes(t *testing.T) {
	l := testLayout()
	data, err := RenderPNG(context.Background(), l)
	if err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}

	// Sample inside the first asset box, away from its labels.
	c := grid.DefaultCanvas()
	x, y, _, h := c.Rect(l, l.Shapes[1])
	r, g, b, _ := img.At(int(x)+4, int(y+h)-4).RGBA()
	if r>>8 != 0xD3 || g>>8 != 0xD3 || b>>8 != 0xD3 {
		t.Errorf("asset fill = %02x%02x%02x, want d3d3d3", r>>8, g>>8, b>>8)
	}
}

func TestRenderPNGDeterministic(t *testing.T) {
	a, err := RenderPNG(context.Background(), testLayout())
	if err != nil {
		t.Fatal(err)
	}
	b, err := RenderPNG(context.Background(), testLayout())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("png output differs between runs")
	}
}

func TestRenderPNGEngines(t *testing.T) {
	if _, err := RenderPNG(context.Background(), testLayout(), WithEngine("bogus")); err == nil {
		t.Error("expected error for unknown engine")
	}
	if !render.HasConverter() {
		t.Skip("rsvg-convert not installed")
	}
	data, err := RenderPNG(context.Background(), testLayout(), WithEngine(EngineRSVG))
	if err != nil {
		t.Fatalf("rsvg engine: %v", err)
	}
	if _, err := png.Decode(bytes.NewReader(data)); err != nil {
		t.Errorf("rsvg output: %v", err)
	}
}

func TestRenderHTML(t *testing.T) {
	out, err := RenderHTML(testLayout())
	if err != nil {
		t.Fatalf("RenderHTML: %v", err)
	}
	html := string(out)
	for _, want := range []string{"MIS Alliance Assets", "Logo.jpg", "Brand Identity", "echarts"} {
		if !strings.Contains(html, want) {
			t.Errorf("html missing %q", want)
		}
	}

	again, err := RenderHTML(testLayout())
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, again) {
		t.Error("html output differs between runs")
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testLayout(), grid.DefaultCanvas())
	if err != nil {
		t.Fatalf("RenderJSON: %v", err)
	}

	var got struct {
		Title  string     `json:"title"`
		XRange [2]float64 `json:"x_range"`
		Shapes []any      `json:"shapes"`
		Canvas struct {
			Width float64 `json:"width"`
		} `json:"canvas"`
		Pixels struct {
			Markers []struct {
				File string  `json:"file"`
				X    float64 `json:"x"`
			} `json:"markers"`
		} `json:"pixels"`
	}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Title != "MIS Alliance Assets" || got.Canvas.Width != 700 || len(got.Shapes) != 15 {
		t.Errorf("json = %+v", got)
	}
	if len(got.Pixels.Markers) != 11 || got.Pixels.Markers[0].File != "Logo.jpg" || got.Pixels.Markers[0].X != 188 {
		t.Errorf("markers = %+v", got.Pixels.Markers)
	}
}

func TestNum(t *testing.T) {
	tests := map[float64]string{0: "0", 1.5: "1.5", -0.001: "0", 620: "620", 0.30000001: "0.3", 12.5: "12.5"}
	for in, want := range tests {
		if got := num(in); got != want {
			t.Errorf("num(%v) = %q, want %q", in, got, want)
		}
	}
}
