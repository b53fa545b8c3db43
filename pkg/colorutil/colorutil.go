// Package colorutil provides color-space conversions and distance metrics
// shared by the identity, naming, query and extraction packages.
package colorutil

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// MaxRGBDistance is the largest possible Euclidean distance between two
// colors whose channels are in [0,1].
var MaxRGBDistance = math.Sqrt(3)

// Reference colors used by tests and defaults.
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
	Red   = RGB(1, 0, 0)
	Green = RGB(0, 1, 0)
	Blue  = RGB(0, 0, 1)
	Cyan  = RGB(0, 1, 1)
)

// RGBToHSV converts a color to HSV with H in [0,360) and S, V in [0,1].
// Hue is 0 for achromatic colors.
func RGBToHSV(c Color) (h, s, v float64) {
	r, g, b := c.R, c.G, c.B

	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	diff := maxC - minC

	v = maxC

	if maxC == 0 {
		s = 0
	} else {
		s = diff / maxC
	}

	if diff == 0 {
		h = 0
	} else if maxC == r {
		h = FloorMod((g-b)/diff, 6)
	} else if maxC == g {
		h = (b-r)/diff + 2
	} else {
		h = (r-g)/diff + 4
	}

	h = FloorMod(h*60, 360)

	return h, s, v
}

// HSVToRGB converts H in degrees and S, V in [0,1] back to an opaque color.
func HSVToRGB(h, s, v float64) Color {
	hn := FloorMod(h, 360) / 360
	c := v * s
	x := c * (1 - math.Abs(math.Mod(hn*6, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case hn < 1.0/6:
		r, g, b = c, x, 0
	case hn < 2.0/6:
		r, g, b = x, c, 0
	case hn < 3.0/6:
		r, g, b = 0, c, x
	case hn < 4.0/6:
		r, g, b = 0, x, c
	case hn < 5.0/6:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return RGB(r+m, g+m, b+m)
}

// HueDistance returns the circular distance between two hues in degrees,
// in the range [0,180].
func HueDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	return math.Min(d, 360-d)
}

// EuclideanRGBDistance returns the distance between two colors over the
// RGB channels. Alpha is ignored.
func EuclideanRGBDistance(a, b Color) float64 {
	return floats.Distance(a.rgb(), b.rgb(), 2)
}

// SimilarityScore maps an RGB distance to [0,1], where 1 means identical.
func SimilarityScore(distance float64) float64 {
	return 1 - distance/MaxRGBDistance
}

// Brightness returns the HSV value channel of c.
func Brightness(c Color) float64 {
	_, _, v := RGBToHSV(c)
	return v
}

// FloorMod is the modulo operation with the sign of the divisor, so that
// FloorMod(-1, 6) == 5.
func FloorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}
	return r
}
