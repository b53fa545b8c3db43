package colorutil

import (
	"encoding/json"
	"fmt"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is an RGB color with channels in [0,1] and an optional alpha.
// The zero value is opaque black without an explicit alpha channel.
type Color struct {
	R, G, B  float64
	A        float64 // Only meaningful when HasAlpha is set
	HasAlpha bool
}

// RGB creates a three-channel color.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// RGBA creates a four-channel color.
func RGBA(r, g, b, a float64) Color {
	return Color{R: r, G: g, B: b, A: a, HasAlpha: true}
}

// InvalidColorError reports channel data that cannot form a Color.
type InvalidColorError struct {
	Values []float64
	Reason string
}

func (e *InvalidColorError) Error() string {
	return fmt.Sprintf("invalid color %v: %s", e.Values, e.Reason)
}

// FromSlice builds a Color from 3 or 4 channel values in [0,1].
func FromSlice(v []float64) (Color, error) {
	if len(v) != 3 && len(v) != 4 {
		return Color{}, &InvalidColorError{Values: v, Reason: fmt.Sprintf("need 3 or 4 channels, got %d", len(v))}
	}
	for i, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return Color{}, &InvalidColorError{Values: v, Reason: fmt.Sprintf("channel %d is not finite", i)}
		}
		if x < 0 || x > 1 {
			return Color{}, &InvalidColorError{Values: v, Reason: fmt.Sprintf("channel %d out of range [0,1]", i)}
		}
	}
	if len(v) == 4 {
		return RGBA(v[0], v[1], v[2], v[3]), nil
	}
	return RGB(v[0], v[1], v[2]), nil
}

// Slice returns the channels of c, including alpha when present.
func (c Color) Slice() []float64 {
	if c.HasAlpha {
		return []float64{c.R, c.G, c.B, c.A}
	}
	return []float64{c.R, c.G, c.B}
}

func (c Color) rgb() []float64 {
	return []float64{c.R, c.G, c.B}
}

// Opaque returns c without its alpha channel.
func (c Color) Opaque() Color {
	return RGB(c.R, c.G, c.B)
}

// Bytes returns the channels scaled to 0-255 and truncated.
func (c Color) Bytes() (r, g, b uint8) {
	return uint8(c.R * 255), uint8(c.G * 255), uint8(c.B * 255)
}

// Hex returns the "#rrggbb" form of c with rounded channels.
func (c Color) Hex() string {
	n := c.NRGBA()
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B)
}

// NRGBA converts c to a standard library color, rounding each channel.
func (c Color) NRGBA() color.NRGBA {
	a := 1.0
	if c.HasAlpha {
		a = c.A
	}
	return color.NRGBA{
		R: uint8(math.Round(clamp01(c.R) * 255)),
		G: uint8(math.Round(clamp01(c.G) * 255)),
		B: uint8(math.Round(clamp01(c.B) * 255)),
		A: uint8(math.Round(clamp01(a) * 255)),
	}
}

func (c Color) String() string {
	if c.HasAlpha {
		return fmt.Sprintf("(%.3f, %.3f, %.3f, %.3f)", c.R, c.G, c.B, c.A)
	}
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", c.R, c.G, c.B)
}

// MarshalJSON encodes c as a 3 or 4 element array.
func (c Color) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Slice())
}

// UnmarshalJSON decodes a 3 or 4 element array.
func (c *Color) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("color must be a number array: %w", err)
	}
	parsed, err := FromSlice(v)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseHex parses "#rgb" or "#rrggbb" into an opaque color.
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return RGB(cf.R, cf.G, cf.B), nil
}

// MustParseHex is like ParseHex but panics on error. Intended for literals.
func MustParseHex(s string) Color {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Colorful converts c to a go-colorful color (alpha dropped).
func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

// FromColorful converts a go-colorful color to an opaque Color.
func FromColorful(cf colorful.Color) Color {
	return RGB(cf.R, cf.G, cf.B)
}

// FromStd converts any standard library color to an opaque Color,
// using 8-bit channel precision.
func FromStd(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB(float64(n.R)/255, float64(n.G)/255, float64(n.B)/255)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
