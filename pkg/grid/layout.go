package grid

import (
	"strings"

	"github.com/matzehuels/assetgrid/pkg/catalog"
)

// Rect is an axis-aligned rectangle in data coordinates.
type Rect struct {
	Kind        string  `json:"kind"`
	X0          float64 `json:"x0"`
	Y0          float64 `json:"y0"`
	X1          float64 `json:"x1"`
	Y1          float64 `json:"y1"`
	Fill        string  `json:"fill"`
	Stroke      string  `json:"stroke"`
	StrokeWidth float64 `json:"stroke_width"`
}

// Rectangle kinds.
const (
	KindBand  = "band"
	KindAsset = "asset"
)

// Text is a label anchored at a data-space point.
type Text struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Text    string  `json:"text"`
	Bold    bool    `json:"bold,omitempty"`
	Size    float64 `json:"size"`
	Color   string  `json:"color"`
	XAnchor string  `json:"xanchor"`
	YAnchor string  `json:"yanchor"`
}

// Text anchors.
const (
	AnchorLeft   = "left"
	AnchorCenter = "center"
	AnchorRight  = "right"
	AnchorMiddle = "middle"
)

// Marker is an invisible hover target centred on an asset box.
type Marker struct {
	X        float64       `json:"x"`
	Y        float64       `json:"y"`
	Size     float64       `json:"size"`
	Color    string        `json:"color"`
	Hover    string        `json:"hover"`
	Category string        `json:"category"`
	Row      int           `json:"row"`
	Asset    catalog.Asset `json:"asset"`
}

// HoverLines returns the hover text split into plain lines.
func (m Marker) HoverLines() []string {
	s := strings.NewReplacer("<b>", "", "</b>", "").Replace(m.Hover)
	return strings.Split(s, "<br>")
}

// Layout is the complete chart in data coordinates.
type Layout struct {
	Title       string     `json:"title"`
	XRange      [2]float64 `json:"x_range"`
	YRange      [2]float64 `json:"y_range"`
	Rows        int        `json:"rows"`
	Columns     int        `json:"columns"`
	Categories  []string   `json:"categories"`
	Shapes      []Rect     `json:"shapes"`
	Annotations []Text     `json:"annotations"`
	Markers     []Marker   `json:"markers"`
}

// RowY returns the y coordinate of the category at row index i.
func (p Params) RowY(i int) float64 { return p.YStart - float64(i)*p.RowHeight }

// ColumnX returns the x coordinate of the asset at column index j.
func (p Params) ColumnX(j int) float64 { return float64(j) * p.AssetSpacing }

// Build computes the layout for cats. The zero Params means [DefaultParams].
func Build(cats []catalog.Category, p Params) Layout {
	p = p.WithDefaults()
	maxAssets := catalog.MaxAssets(cats)

	l := Layout{
		Title:      p.Title,
		XRange:     p.XRange,
		YRange:     p.YRange,
		Rows:       len(cats),
		Columns:    maxAssets,
		Categories: make([]string, len(cats)),
	}

	halfW, halfH := p.AssetWidth/2, p.AssetHeight/2
	bandRight := float64(maxAssets-1)*p.AssetSpacing + halfW + bandPadRight

	for i, cat := range cats {
		y := p.RowY(i)
		l.Categories[i] = cat.Name

		l.Shapes = append(l.Shapes, Rect{
			Kind:        KindBand,
			X0:          bandInsetLeft,
			Y0:          y - halfH - bandPadVertical,
			X1:          bandRight,
			Y1:          y + halfH + bandPadVertical,
			Fill:        bandFill,
			Stroke:      "black",
			StrokeWidth: 1,
		})
		l.Annotations = append(l.Annotations, Text{
			X: labelX, Y: y,
			Text:    truncate(cat.Name, p.LabelLimit),
			Bold:    true,
			Size:    11,
			Color:   "black",
			XAnchor: AnchorRight,
			YAnchor: AnchorMiddle,
		})

		fill := p.color(cat.Name, i)
		for j, a := range cat.Assets {
			x := p.ColumnX(j)

			l.Shapes = append(l.Shapes, Rect{
				Kind:        KindAsset,
				X0:          x - halfW,
				Y0:          y - halfH,
				X1:          x + halfW,
				Y1:          y + halfH,
				Fill:        fill,
				Stroke:      "black",
				StrokeWidth: 2,
			})
			l.Annotations = append(l.Annotations,
				Text{X: x, Y: y + labelOffset, Text: truncate(a.File, p.LabelLimit), Bold: true, Size: 9, Color: "black", XAnchor: AnchorCenter, YAnchor: AnchorMiddle},
				Text{X: x, Y: y, Text: truncate(a.Description, p.LabelLimit), Size: 8, Color: "black", XAnchor: AnchorCenter, YAnchor: AnchorMiddle},
				Text{X: x, Y: y - labelOffset, Text: truncate(a.Usage, p.LabelLimit), Size: 7, Color: "gray", XAnchor: AnchorCenter, YAnchor: AnchorMiddle},
			)

			a.Category = cat.Name
			l.Markers = append(l.Markers, Marker{
				X: x, Y: y,
				Size:     p.MarkerSize,
				Color:    transparent,
				Hover:    HoverText(a),
				Category: cat.Name,
				Row:      i,
				Asset:    a,
			})
		}
	}
	return l
}

// HoverText formats the tooltip shown for an asset.
func HoverText(a catalog.Asset) string {
	return "<b>File:</b> " + a.File + "<br><b>Type:</b> " + a.Description + "<br><b>Usage:</b> " + a.Usage
}

// truncate keeps the first n runes of s.
func truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
