package viewer

import (
	"image/color"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scivis/internal/render"
	"scivis/pkg/colorutil"
)

func TestColumns(t *testing.T) {
	assert.Equal(t, 1, Columns(0))
	assert.Equal(t, 1, Columns(1))
	assert.Equal(t, 2, Columns(5))
	assert.Equal(t, 3, Columns(12))
	assert.Equal(t, 4, Columns(40))
}

func TestThemePrimaryFollowsFirstSwatch(t *testing.T) {
	th := NewTheme([]render.Swatch{{Color: colorutil.Red}, {Color: colorutil.Blue}})
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, th.Color(theme.ColorNamePrimary, theme.VariantLight))

	empty := NewTheme(nil)
	assert.Equal(t,
		theme.DefaultTheme().Color(theme.ColorNamePrimary, theme.VariantDark),
		empty.Color(theme.ColorNamePrimary, theme.VariantDark))
	assert.Equal(t, float32(16), empty.Size(theme.SizeNameScrollBar))
}

func TestCellWithoutLabelIsRectangle(t *testing.T) {
	obj := Cell(render.Swatch{Color: colorutil.Green})
	rect, ok := obj.(*canvas.Rectangle)
	require.True(t, ok)
	assert.Equal(t, color.NRGBA{G: 255, A: 255}, rect.FillColor)
	assert.Equal(t, fyne.NewSize(cellWidth, cellHeight), rect.MinSize())
}

func TestCellLabelLines(t *testing.T) {
	obj := Cell(render.Swatch{Color: colorutil.Blue, Label: "blue\n#0000ff"})
	stack, ok := obj.(*fyne.Container)
	require.True(t, ok)
	require.Len(t, stack.Objects, 2)

	center := stack.Objects[1].(*fyne.Container)
	box := center.Objects[0].(*fyne.Container)
	require.Len(t, box.Objects, 2)
	txt := box.Objects[1].(*canvas.Text)
	assert.Equal(t, "#0000ff", txt.Text)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, txt.Color)
}

func TestNewWindow(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	win := NewWindow(a, "Colors", []render.Swatch{{Color: colorutil.Red, Label: "red"}})
	assert.Equal(t, "Colors", win.Title())
	assert.NotNil(t, win.Content())

	before := win.Content()
	Refresh(win, []render.Swatch{{Color: colorutil.Blue}})
	assert.NotSame(t, before, win.Content())
}
