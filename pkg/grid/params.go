package grid

// Params holds the layout constants.
type Params struct {
	Title        string     `json:"title" toml:"title"`
	YStart       float64    `json:"y_start" toml:"y_start"`
	RowHeight    float64    `json:"row_height" toml:"row_height"`
	AssetSpacing float64    `json:"asset_spacing" toml:"asset_spacing"`
	AssetWidth   float64    `json:"asset_width" toml:"asset_width"`
	AssetHeight  float64    `json:"asset_height" toml:"asset_height"`
	XRange       [2]float64 `json:"x_range" toml:"x_range"`
	YRange       [2]float64 `json:"y_range" toml:"y_range"`
	LabelLimit   int        `json:"label_limit" toml:"label_limit"`
	MarkerSize   float64    `json:"marker_size" toml:"marker_size"`

	// Colors maps category names to box fill colours. Categories without an
	// entry take colours from Palette in row order.
	Colors  map[string]string `json:"colors,omitempty" toml:"colors"`
	Palette []string          `json:"palette,omitempty" toml:"palette"`
}

// Default layout constants.
const (
	DefaultTitle        = "MIS Alliance Assets"
	DefaultYStart       = 4.0
	DefaultRowHeight    = 1.5
	DefaultAssetSpacing = 1.5
	DefaultAssetWidth   = 1.2
	DefaultAssetHeight  = 0.8
	DefaultLabelLimit   = 15
	DefaultMarkerSize   = 100.0
)

// Fixed styling that is not configurable.
const (
	bandFill        = "rgba(240,240,240,0.3)"
	bandInsetLeft   = -0.8
	bandPadRight    = 0.2
	bandPadVertical = 0.1
	labelX          = -0.6
	labelOffset     = 0.2
	transparent     = "rgba(0,0,0,0)"
)

// DefaultPalette holds the greyscale fills, one per built-in category.
var DefaultPalette = []string{"#D3D3D3", "#B8B8B8", "#A0A0A0", "#888888"}

// DefaultColors maps the built-in categories to their fills.
func DefaultColors() map[string]string {
	return map[string]string{
		"Brand Identity":   "#D3D3D3",
		"Website Headers":  "#B8B8B8",
		"Functional Icons": "#A0A0A0",
		"Section Graphics": "#888888",
	}
}

// DefaultParams returns the built-in layout constants.
func DefaultParams() Params {
	return Params{
		Title:        DefaultTitle,
		YStart:       DefaultYStart,
		RowHeight:    DefaultRowHeight,
		AssetSpacing: DefaultAssetSpacing,
		AssetWidth:   DefaultAssetWidth,
		AssetHeight:  DefaultAssetHeight,
		XRange:       [2]float64{-1, 4},
		YRange:       [2]float64{0.5, 5},
		LabelLimit:   DefaultLabelLimit,
		MarkerSize:   DefaultMarkerSize,
		Colors:       DefaultColors(),
		Palette:      append([]string(nil), DefaultPalette...),
	}
}

// WithDefaults returns [DefaultParams] for the zero Params. Otherwise only
// unset axis ranges are filled, since a zero-width range cannot be projected;
// every other zero is kept.
func (p Params) WithDefaults() Params {
	if p.isZero() {
		return DefaultParams()
	}
	d := DefaultParams()
	if p.XRange == ([2]float64{}) {
		p.XRange = d.XRange
	}
	if p.YRange == ([2]float64{}) {
		p.YRange = d.YRange
	}
	return p
}

func (p Params) isZero() bool {
	return p.Title == "" && p.YStart == 0 && p.RowHeight == 0 &&
		p.AssetSpacing == 0 && p.AssetWidth == 0 && p.AssetHeight == 0 &&
		p.XRange == ([2]float64{}) && p.YRange == ([2]float64{}) &&
		p.LabelLimit == 0 && p.MarkerSize == 0 &&
		p.Colors == nil && len(p.Palette) == 0
}

// color returns the fill for the category at row index i.
func (p Params) color(name string, i int) string {
	if c, ok := p.Colors[name]; ok {
		return c
	}
	if len(p.Palette) == 0 {
		return DefaultPalette[i%len(DefaultPalette)]
	}
	return p.Palette[i%len(p.Palette)]
}
