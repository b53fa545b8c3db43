package viewer

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"scivis/internal/render"
)

// Theme is the viewer theme. Its primary color follows the palette on show.
type Theme struct {
	Primary color.Color
}

var _ fyne.Theme = (*Theme)(nil)

// NewTheme takes its primary color from the first swatch, if any.
func NewTheme(swatches []render.Swatch) *Theme {
	t := &Theme{}
	if len(swatches) > 0 {
		t.Primary = swatches[0].Color.NRGBA()
	}
	return t
}

func (t *Theme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		if t.Primary != nil {
			return t.Primary
		}
		return theme.DefaultTheme().Color(name, variant)
	case theme.ColorNameScrollBar:
		return color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xFF}
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *Theme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *Theme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *Theme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	case theme.SizeNameScrollBarSmall:
		return 12
	default:
		return theme.DefaultTheme().Size(name)
	}
}
