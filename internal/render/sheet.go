// Package render draws labelled color swatches to images.
package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"scivis/pkg/colorutil"
)

// Sink receives swatches to paint.
type Sink interface {
	Swatch(c colorutil.Color, label string)
}

// Swatch is one painted color and its label. Labels may span lines.
type Swatch struct {
	Color colorutil.Color
	Label string
}

// Sheet lays swatches out in a grid below an optional title.
type Sheet struct {
	Title     string
	Columns   int
	Width     int
	RowHeight int
	FontSize  float64

	swatches []Swatch
}

const (
	defaultWidth     = 800
	defaultRowHeight = 90
	defaultFontSize  = 13
	titleHeight      = 40
)

// NewSheet creates a single column sheet.
func NewSheet(title string) *Sheet {
	return &Sheet{
		Title:     title,
		Columns:   1,
		Width:     defaultWidth,
		RowHeight: defaultRowHeight,
		FontSize:  defaultFontSize,
	}
}

// Swatch implements Sink.
func (s *Sheet) Swatch(c colorutil.Color, label string) {
	s.swatches = append(s.swatches, Swatch{Color: c, Label: label})
}

// Swatches returns the collected swatches.
func (s *Sheet) Swatches() []Swatch {
	return append([]Swatch(nil), s.swatches...)
}

// Len returns the number of swatches.
func (s *Sheet) Len() int { return len(s.swatches) }

func (s *Sheet) columns() int {
	if s.Columns < 1 {
		return 1
	}
	return s.Columns
}

func (s *Sheet) rowHeight() int {
	if s.RowHeight < 1 {
		return defaultRowHeight
	}
	return s.RowHeight
}

func (s *Sheet) width() int {
	if s.Width < 1 {
		return defaultWidth
	}
	return s.Width
}

func (s *Sheet) header() int {
	if s.Title == "" {
		return 0
	}
	return titleHeight
}

// Size returns the pixel size of the rendered sheet.
func (s *Sheet) Size() (w, h int) {
	cols := s.columns()
	rows := (len(s.swatches) + cols - 1) / cols
	if rows == 0 {
		rows = 1
	}
	return s.width(), s.header() + rows*s.rowHeight()
}

// Cell returns the rectangle of swatch i.
func (s *Sheet) Cell(i int) image.Rectangle {
	cols := s.columns()
	cw := s.width() / cols
	rh := s.rowHeight()
	x := (i % cols) * cw
	y := s.header() + (i/cols)*rh
	return image.Rect(x, y, x+cw, y+rh)
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func loadFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// Render draws the sheet and returns the image.
func (s *Sheet) Render() (image.Image, error) {
	dc, err := s.draw()
	if err != nil {
		return nil, err
	}
	defer dc.Close()
	return dc.Image(), nil
}

func (s *Sheet) draw() (*gg.Context, error) {
	src, err := loadFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	fontSize := s.FontSize
	if fontSize <= 0 {
		fontSize = defaultFontSize
	}

	w, h := s.Size()
	dc := gg.NewContext(w, h)
	dc.ClearWithColor(gg.White)

	if s.Title != "" {
		dc.SetFont(src.Face(fontSize * 1.4))
		dc.SetRGB(0, 0, 0)
		dc.DrawStringAnchored(s.Title, float64(w)/2, titleHeight/2, 0.5, 0.5)
	}

	dc.SetFont(src.Face(fontSize))
	for i, sw := range s.swatches {
		cell := s.Cell(i)
		dc.SetRGB(sw.Color.R, sw.Color.G, sw.Color.B)
		dc.DrawRectangle(float64(cell.Min.X), float64(cell.Min.Y), float64(cell.Dx()), float64(cell.Dy()))
		if err := dc.Fill(); err != nil {
			dc.Close()
			return nil, fmt.Errorf("failed to fill swatch %d: %w", i, err)
		}
		s.drawLabel(dc, sw, cell)
	}
	return dc, nil
}

func (s *Sheet) drawLabel(dc *gg.Context, sw Swatch, cell image.Rectangle) {
	if sw.Label == "" {
		return
	}
	tc := TextColor(sw.Color)
	dc.SetRGB(tc.R, tc.G, tc.B)

	lines := strings.Split(sw.Label, "\n")
	_, lh := dc.MeasureString("Hg")
	top := float64(cell.Min.Y) + (float64(cell.Dy())-lh*float64(len(lines)))/2
	cx := float64(cell.Min.X) + float64(cell.Dx())/2
	for j, line := range lines {
		dc.DrawStringAnchored(line, cx, top+lh*float64(j)+lh/2, 0.5, 0.5)
	}
}

// SavePNG renders the sheet to path, creating parent directories.
func (s *Sheet) SavePNG(path string) error {
	if len(s.swatches) == 0 {
		return errors.New("no colors to render")
	}
	dc, err := s.draw()
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// EncodePNG renders the sheet as PNG to w.
func (s *Sheet) EncodePNG(w io.Writer) error {
	dc, err := s.draw()
	if err != nil {
		return err
	}
	defer dc.Close()
	return dc.EncodePNG(w)
}

// TextColor returns white for dark colors and black for light ones.
func TextColor(c colorutil.Color) colorutil.Color {
	if c.R+c.G+c.B < 1.5 {
		return colorutil.White
	}
	return colorutil.Black
}

// Label formats the multi-line description used under a swatch.
func Label(name string, c colorutil.Color, id string) string {
	r, g, b := c.Bytes()
	h, s, v := colorutil.RGBToHSV(c)
	lines := []string{
		name,
		fmt.Sprintf("RGB: [%d, %d, %d]  HEX: #%02x%02x%02x", r, g, b, r, g, b),
		fmt.Sprintf("HSV: H:%.0f° S:%.0f%% V:%.0f%%", h, s*100, v*100),
	}
	if id != "" {
		lines = append(lines, "ID: "+id)
	}
	return strings.Join(lines, "\n")
}
