package palette

import (
	"errors"
	"fmt"
	"sort"

	"scivis/pkg/colorutil"
)

// ErrUnknown is wrapped by lookups of names the Manager does not hold.
var ErrUnknown = errors.New("not found")

// Manager holds the named colors, semantic roles, palettes and gradients
// used for figures. The zero value is not usable; use NewManager.
type Manager struct {
	base          map[string]colorutil.Color
	roles         map[string]colorutil.Color
	palettes      map[string][]colorutil.Color
	gradients     map[string][]colorutil.Color
	imagePalettes map[string][]colorutil.Color
}

func hexList(hex ...string) []colorutil.Color {
	out := make([]colorutil.Color, len(hex))
	for i, h := range hex {
		out[i] = colorutil.MustParseHex(h)
	}
	return out
}

// NewManager returns a Manager loaded with the built-in definitions.
func NewManager() *Manager {
	m := &Manager{
		base: map[string]colorutil.Color{
			"primary":        colorutil.MustParseHex("#1f77b4"),
			"secondary":      colorutil.MustParseHex("#ff7f0e"),
			"tertiary":       colorutil.MustParseHex("#2ca02c"),
			"success":        colorutil.MustParseHex("#2ecc71"),
			"warning":        colorutil.MustParseHex("#f39c12"),
			"error":          colorutil.MustParseHex("#e74c3c"),
			"info":           colorutil.MustParseHex("#3498db"),
			"background":     colorutil.MustParseHex("#ffffff"),
			"background_alt": colorutil.MustParseHex("#f8f9fa"),
			"foreground":     colorutil.MustParseHex("#333333"),
			"foreground_alt": colorutil.MustParseHex("#666666"),
			"accent":         colorutil.MustParseHex("#9b59b6"),
			"accent_alt":     colorutil.MustParseHex("#8e44ad"),
		},
		palettes: map[string][]colorutil.Color{
			"default":     hexList("#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f", "#bcbd22", "#17becf"),
			"pastel":      hexList("#a1c9f4", "#ffb482", "#8de5a1", "#ff9f9b", "#d0bbff", "#debb9b", "#fab0e4", "#cfcfcf", "#fffea3", "#b9f2f0"),
			"vibrant":     hexList("#0077bb", "#cc3311", "#009988", "#ee7733", "#33bbee", "#ee3377", "#bbbbbb"),
			"muted":       hexList("#4878d0", "#ee854a", "#6acc64", "#d65f5f", "#956cb4", "#8c613c", "#dc7ec0", "#797979", "#d5bb67", "#82c6e2"),
			"scientific":  hexList("#0C5DA5", "#00B945", "#FF9500", "#FF2C00", "#845B97", "#474747", "#9e9e9e"),
			"qualitative": hexList("#4477AA", "#66CCEE", "#228833", "#CCBB44", "#EE6677", "#AA3377", "#BBBBBB"),
		},
		gradients: map[string][]colorutil.Color{
			"blues":     hexList("#deebf7", "#9ecae1", "#3182bd"),
			"reds":      hexList("#fee0d2", "#fc9272", "#de2d26"),
			"greens":    hexList("#e5f5e0", "#a1d99b", "#31a354"),
			"purples":   hexList("#efedf5", "#bcbddc", "#756bb1"),
			"greys":     hexList("#f7f7f7", "#cccccc", "#636363"),
			"heat":      hexList("#ffffcc", "#fd8d3c", "#800026"),
			"cool":      hexList("#f7fcfd", "#66c2a4", "#00441b"),
			"diverging": hexList("#2166ac", "#f7f7f7", "#b2182b"),
		},
		imagePalettes: map[string][]colorutil.Color{},
	}
	m.roles = map[string]colorutil.Color{
		"main_item":       m.base["primary"],
		"comparison_item": m.base["secondary"],
		"highlight":       m.base["accent"],
		"background":      m.base["background"],
		"grid":            colorutil.MustParseHex("#eeeeee"),
		"text":            m.base["foreground"],
		"annotation":      m.base["foreground_alt"],
	}
	return m
}

// Color returns a base color, or failing that a role color.
func (m *Manager) Color(name string) (colorutil.Color, error) {
	if c, ok := m.base[name]; ok {
		return c, nil
	}
	if c, ok := m.roles[name]; ok {
		return c, nil
	}
	return colorutil.Color{}, fmt.Errorf("color %q: %w", name, ErrUnknown)
}

// Palette returns the named palette. A positive n cycles through the
// palette to return exactly n colors.
func (m *Manager) Palette(name string, n int) ([]colorutil.Color, error) {
	p, ok := m.palettes[name]
	if !ok {
		return nil, fmt.Errorf("palette %q: %w", name, ErrUnknown)
	}
	if n <= 0 {
		return append([]colorutil.Color(nil), p...), nil
	}
	out := make([]colorutil.Color, n)
	for i := range out {
		out[i] = p[i%len(p)]
	}
	return out, nil
}

// Gradient samples n evenly spaced colors from the named gradient,
// interpolating linearly in RGB between its stops. A single sample is
// the first stop.
func (m *Manager) Gradient(name string, n int) ([]colorutil.Color, error) {
	stops, ok := m.gradients[name]
	if !ok {
		return nil, fmt.Errorf("gradient %q: %w", name, ErrUnknown)
	}
	return Interpolate(stops, n), nil
}

// Interpolate samples n colors along the piecewise linear ramp through
// stops.
func Interpolate(stops []colorutil.Color, n int) []colorutil.Color {
	if n <= 0 || len(stops) == 0 {
		return nil
	}
	if n == 1 || len(stops) == 1 {
		out := make([]colorutil.Color, n)
		for i := range out {
			out[i] = stops[0]
		}
		return out
	}
	segments := len(stops) - 1
	out := make([]colorutil.Color, n)
	for i := range out {
		t := float64(i) / float64(n-1) * float64(segments)
		seg := int(t)
		if seg >= segments {
			seg = segments - 1
		}
		a, b := stops[seg].Colorful(), stops[seg+1].Colorful()
		out[i] = colorutil.FromColorful(a.BlendRgb(b, t-float64(seg)).Clamped())
	}
	return out
}

// SetPalette adds or replaces a palette.
func (m *Manager) SetPalette(name string, colors []colorutil.Color) {
	m.palettes[name] = append([]colorutil.Color(nil), colors...)
}

// SetGradient adds or replaces a gradient.
func (m *Manager) SetGradient(name string, stops []colorutil.Color) {
	m.gradients[name] = append([]colorutil.Color(nil), stops...)
}

// SetRole assigns a semantic role color.
func (m *Manager) SetRole(role string, c colorutil.Color) { m.roles[role] = c }

// AddBaseColor adds or replaces a base color.
func (m *Manager) AddBaseColor(name string, c colorutil.Color) { m.base[name] = c }

// AddImagePalette registers colors extracted from an image.
func (m *Manager) AddImagePalette(name string, colors []colorutil.Color) {
	m.imagePalettes[name] = append([]colorutil.Color(nil), colors...)
}

// ImagePalette returns a palette registered with AddImagePalette.
func (m *Manager) ImagePalette(name string) ([]colorutil.Color, bool) {
	p, ok := m.imagePalettes[name]
	return p, ok
}

// PaletteNames returns the palette names, sorted.
func (m *Manager) PaletteNames() []string { return sortedKeys(m.palettes) }

// GradientNames returns the gradient names, sorted.
func (m *Manager) GradientNames() []string { return sortedKeys(m.gradients) }

// ImagePaletteNames returns the registered image palette names, sorted.
func (m *Manager) ImagePaletteNames() []string { return sortedKeys(m.imagePalettes) }

func sortedKeys(m map[string][]colorutil.Color) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

var (
	gridColors = map[string]colorutil.Color{
		"default": colorutil.MustParseHex("#dddddd"),
		"dashed":  colorutil.MustParseHex("#cccccc"),
		"dotted":  colorutil.MustParseHex("#888888"),
		"subtle":  colorutil.MustParseHex("#eeeeee"),
	}
	commonColors = map[string]colorutil.Color{
		"white": colorutil.White,
		"gray":  colorutil.MustParseHex("#808080"),
		"black": colorutil.Black,
	}
	specialColors = map[string]colorutil.Color{
		"info_background": colorutil.MustParseHex("#e5f5fd"),
		"info_border":     colorutil.MustParseHex("#a8d7fd"),
	}
)

// GridColor returns the grid line color for style, or the default one.
func GridColor(style string) colorutil.Color {
	if c, ok := gridColors[style]; ok {
		return c
	}
	return gridColors["default"]
}

// CommonColor returns a common color by name, white when unknown.
func CommonColor(name string) colorutil.Color {
	if c, ok := commonColors[name]; ok {
		return c
	}
	return colorutil.White
}

// SpecialColor returns a special purpose color.
func SpecialColor(name string) (colorutil.Color, bool) {
	c, ok := specialColors[name]
	return c, ok
}

// Blend mixes a and b in RGB; t=0 yields a.
func Blend(a, b colorutil.Color, t float64) colorutil.Color {
	return colorutil.FromColorful(a.Colorful().BlendRgb(b.Colorful(), t))
}
