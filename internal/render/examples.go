package render

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/gg"

	"scivis/pkg/colorutil"
)

const (
	examplesWidth  = 800
	examplesPanel  = 120
	examplesChart  = 200
	maxTextSamples = 4
)

// SaveExamples draws usage samples for a palette: text set on each color
// in a contrasting palette color, and a bar chart using the palette.
// At least two colors are required.
func SaveExamples(colors []colorutil.Color, path string) error {
	if len(colors) < 2 {
		return errors.New("usage examples need at least two colors")
	}
	src, err := loadFont()
	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	h := titleHeight + examplesPanel + titleHeight + examplesChart
	dc := gg.NewContext(examplesWidth, h)
	defer dc.Close()
	dc.ClearWithColor(gg.White)

	dc.SetFont(src.Face(defaultFontSize * 1.2))
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Text on background", examplesWidth/2, titleHeight/2, 0.5, 0.5)

	n := len(colors)
	if n > maxTextSamples {
		n = maxTextSamples
	}
	pw := float64(examplesWidth) / float64(n)
	dc.SetFont(src.Face(defaultFontSize))
	for i := 0; i < n; i++ {
		bg := colors[i]
		fg := colors[ContrastIndex(i, len(colors))]
		dc.SetRGB(bg.R, bg.G, bg.B)
		dc.DrawRectangle(float64(i)*pw, titleHeight, pw, examplesPanel)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("failed to fill sample %d: %w", i, err)
		}
		dc.SetRGB(fg.R, fg.G, fg.B)
		cx := float64(i)*pw + pw/2
		cy := float64(titleHeight) + examplesPanel/2
		dc.DrawStringAnchored("Sample text", cx, cy-8, 0.5, 0.5)
		dc.DrawStringAnchored(bg.Hex(), cx, cy+10, 0.5, 0.5)
	}

	chartTop := float64(titleHeight + examplesPanel + titleHeight)
	dc.SetFont(src.Face(defaultFontSize * 1.2))
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored("Chart colors", examplesWidth/2, chartTop-titleHeight/2, 0.5, 0.5)

	bw := float64(examplesWidth) / float64(len(colors))
	for i, c := range colors {
		bh := BarHeight(i, len(colors)) * (examplesChart - 20)
		dc.SetRGB(c.R, c.G, c.B)
		dc.DrawRectangle(float64(i)*bw+bw*0.15, chartTop+examplesChart-bh, bw*0.7, bh)
		if err := dc.Fill(); err != nil {
			return fmt.Errorf("failed to fill bar %d: %w", i, err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// ContrastIndex picks the palette entry half way round from i.
func ContrastIndex(i, n int) int {
	return (i + n/2) % n
}

// BarHeight ramps linearly from 0.3 to 1 across n bars.
func BarHeight(i, n int) float64 {
	if n < 2 {
		return 1
	}
	return 0.3 + 0.7*float64(i)/float64(n-1)
}
