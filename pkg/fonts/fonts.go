// Package fonts provides the font faces used for raster output.
//
// The Go fonts ship inside golang.org/x/image, so no files are read at
// runtime. Parsed fonts are cached after first use.
package fonts

import (
	"fmt"
	"sync"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// FontFamily is the CSS font-family used in vector output.
const FontFamily = `'Go', 'Helvetica Neue', Arial, sans-serif`

var (
	regular, bold *truetype.Font
	parseErr      error
	parseOnce     sync.Once
)

func load() error {
	parseOnce.Do(func() {
		if regular, parseErr = truetype.Parse(goregular.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse regular font: %w", parseErr)
			return
		}
		if bold, parseErr = truetype.Parse(gobold.TTF); parseErr != nil {
			parseErr = fmt.Errorf("parse bold font: %w", parseErr)
		}
	})
	return parseErr
}

// Face returns a face of the given pixel size.
func Face(size float64, isBold bool) (font.Face, error) {
	if err := load(); err != nil {
		return nil, err
	}
	f := regular
	if isBold {
		f = bold
	}
	return truetype.NewFace(f, &truetype.Options{Size: size, DPI: 72, Hinting: font.HintingFull}), nil
}
