package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scivis/pkg/colorutil"
)

func assertPixel(t *testing.T, img image.Image, x, y int, want colorutil.Color) {
	t.Helper()
	got := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	w := want.NRGBA()
	assert.InDelta(t, float64(w.R), float64(got.R), 2, "red at %d,%d", x, y)
	assert.InDelta(t, float64(w.G), float64(got.G), 2, "green at %d,%d", x, y)
	assert.InDelta(t, float64(w.B), float64(got.B), 2, "blue at %d,%d", x, y)
}

func TestSheetLayout(t *testing.T) {
	s := NewSheet("Palette")
	s.Columns = 2
	s.Width = 400
	s.RowHeight = 50
	for i := 0; i < 3; i++ {
		s.Swatch(colorutil.Red, "")
	}
	w, h := s.Size()
	assert.Equal(t, 400, w)
	assert.Equal(t, titleHeight+2*50, h)
	assert.Equal(t, image.Rect(200, titleHeight, 400, titleHeight+50), s.Cell(1))
	assert.Equal(t, image.Rect(0, titleHeight+50, 200, titleHeight+100), s.Cell(2))

	untitled := NewSheet("")
	_, h = untitled.Size()
	assert.Equal(t, defaultRowHeight, h)
}

func TestSheetRender(t *testing.T) {
	s := NewSheet("")
	s.Width = 200
	s.RowHeight = 40
	s.Swatch(colorutil.Blue, "blue")
	s.Swatch(colorutil.RGB(1, 0.5, 0), "")

	img, err := s.Render()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 200, 80), img.Bounds())
	assertPixel(t, img, 5, 20, colorutil.Blue)
	assertPixel(t, img, 100, 60, colorutil.RGB(1, 0.5, 0))
}

func TestSheetSavePNG(t *testing.T) {
	s := NewSheet("Similar colors")
	s.Swatch(colorutil.Cyan, Label("cyan", colorutil.Cyan, "00ffff7fffff"))
	path := filepath.Join(t.TempDir(), "out", "sheet.png")
	require.NoError(t, s.SavePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assertPixel(t, img, 2, titleHeight+2, colorutil.Cyan)
	assertPixel(t, img, 2, 2, colorutil.White)

	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestSavePNGEmpty(t *testing.T) {
	assert.Error(t, NewSheet("x").SavePNG(filepath.Join(t.TempDir(), "x.png")))
}

func TestTextColor(t *testing.T) {
	assert.Equal(t, colorutil.White, TextColor(colorutil.Blue))
	assert.Equal(t, colorutil.Black, TextColor(colorutil.Cyan))
	assert.Equal(t, colorutil.Black, TextColor(colorutil.RGB(0.5, 0.5, 0.5)))
}

func TestLabel(t *testing.T) {
	got := Label("vivid_red", colorutil.Red, "ff000000ffff")
	assert.Equal(t, "vivid_red\nRGB: [255, 0, 0]  HEX: #ff0000\nHSV: H:0° S:100% V:100%\nID: ff000000ffff", got)
	assert.NotContains(t, Label("x", colorutil.Red, ""), "ID:")
}

type recorder struct{ got []Swatch }

func (r *recorder) Swatch(c colorutil.Color, label string) {
	r.got = append(r.got, Swatch{Color: c, Label: label})
}

func TestSinkInterface(t *testing.T) {
	var sinks []Sink = []Sink{NewSheet(""), &recorder{}}
	for _, s := range sinks {
		s.Swatch(colorutil.Red, "red")
	}
	assert.Len(t, sinks[1].(*recorder).got, 1)
	assert.Equal(t, 1, sinks[0].(*Sheet).Len())
}

func TestContrastAndBars(t *testing.T) {
	assert.Equal(t, 2, ContrastIndex(0, 4))
	assert.Equal(t, 0, ContrastIndex(2, 4))
	assert.Equal(t, 2, ContrastIndex(1, 3))
	assert.InDelta(t, 0.3, BarHeight(0, 5), 1e-9)
	assert.InDelta(t, 1.0, BarHeight(4, 5), 1e-9)
	assert.Equal(t, 1.0, BarHeight(0, 1))
}

func TestSaveExamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "examples.png")
	assert.Error(t, SaveExamples([]colorutil.Color{colorutil.Red}, path))

	require.NoError(t, SaveExamples([]colorutil.Color{colorutil.Red, colorutil.Blue, colorutil.Green}, path))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, examplesWidth, img.Bounds().Dx())
	assertPixel(t, img, 2, titleHeight+2, colorutil.Red)
}
