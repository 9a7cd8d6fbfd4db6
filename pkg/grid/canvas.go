package grid

// Canvas maps data coordinates to pixels.
type Canvas struct {
	Width        float64 `json:"width" toml:"width"`
	Height       float64 `json:"height" toml:"height"`
	MarginLeft   float64 `json:"margin_left" toml:"margin_left"`
	MarginRight  float64 `json:"margin_right" toml:"margin_right"`
	MarginTop    float64 `json:"margin_top" toml:"margin_top"`
	MarginBottom float64 `json:"margin_bottom" toml:"margin_bottom"`
	Background   string  `json:"background" toml:"background"`
}

// DefaultCanvas returns a 700×500 white canvas with an 80/80/100/80 margin.
func DefaultCanvas() Canvas {
	return Canvas{
		Width:        700,
		Height:       500,
		MarginLeft:   80,
		MarginRight:  80,
		MarginTop:    100,
		MarginBottom: 80,
		Background:   "white",
	}
}

// WithDefaults fills a zero-sized canvas from [DefaultCanvas].
func (c Canvas) WithDefaults() Canvas {
	d := DefaultCanvas()
	if c.Width <= 0 || c.Height <= 0 {
		c.Width, c.Height = d.Width, d.Height
		c.MarginLeft, c.MarginRight = d.MarginLeft, d.MarginRight
		c.MarginTop, c.MarginBottom = d.MarginTop, d.MarginBottom
	}
	if c.Background == "" {
		c.Background = d.Background
	}
	return c
}

// PlotWidth returns the width of the plot area in pixels.
func (c Canvas) PlotWidth() float64 { return c.Width - c.MarginLeft - c.MarginRight }

// PlotHeight returns the height of the plot area in pixels.
func (c Canvas) PlotHeight() float64 { return c.Height - c.MarginTop - c.MarginBottom }

// X projects a data x coordinate to a pixel column.
func (c Canvas) X(l Layout, x float64) float64 {
	return c.MarginLeft + (x-l.XRange[0])/(l.XRange[1]-l.XRange[0])*c.PlotWidth()
}

// Y projects a data y coordinate to a pixel row. Pixel rows grow downwards.
func (c Canvas) Y(l Layout, y float64) float64 {
	return c.MarginTop + (l.YRange[1]-y)/(l.YRange[1]-l.YRange[0])*c.PlotHeight()
}

// Rect projects r to pixel space and returns its top-left corner and size.
func (c Canvas) Rect(l Layout, r Rect) (x, y, w, h float64) {
	x0, x1 := c.X(l, r.X0), c.X(l, r.X1)
	y0, y1 := c.Y(l, r.Y1), c.Y(l, r.Y0)
	return x0, y0, x1 - x0, y1 - y0
}
