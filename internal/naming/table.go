package naming

import "scivis/pkg/colorutil"

// BasicColor is a canonical color name and its reference value.
type BasicColor struct {
	Name  string
	Color colorutil.Color
}

// basicColors is the reference table for nearest-name lookup. Order
// matters: on equal distance the earlier entry wins.
var basicColors = []BasicColor{
	{"red", colorutil.RGB(1.0, 0.0, 0.0)},
	{"orange", colorutil.RGB(1.0, 0.5, 0.0)},
	{"yellow", colorutil.RGB(1.0, 1.0, 0.0)},
	{"chartreuse", colorutil.RGB(0.5, 1.0, 0.0)},
	{"green", colorutil.RGB(0.0, 1.0, 0.0)},
	{"spring_green", colorutil.RGB(0.0, 1.0, 0.5)},
	{"cyan", colorutil.RGB(0.0, 1.0, 1.0)},
	{"azure", colorutil.RGB(0.0, 0.5, 1.0)},
	{"blue", colorutil.RGB(0.0, 0.0, 1.0)},
	{"violet", colorutil.RGB(0.5, 0.0, 1.0)},
	{"magenta", colorutil.RGB(1.0, 0.0, 1.0)},
	{"rose", colorutil.RGB(1.0, 0.0, 0.5)},
	{"black", colorutil.RGB(0.0, 0.0, 0.0)},
	{"dark_gray", colorutil.RGB(0.25, 0.25, 0.25)},
	{"gray", colorutil.RGB(0.5, 0.5, 0.5)},
	{"light_gray", colorutil.RGB(0.75, 0.75, 0.75)},
	{"white", colorutil.RGB(1.0, 1.0, 1.0)},
	{"brown", colorutil.RGB(0.6, 0.3, 0.1)},
	{"olive", colorutil.RGB(0.5, 0.5, 0.0)},
	{"teal", colorutil.RGB(0.0, 0.5, 0.5)},
	{"navy", colorutil.RGB(0.0, 0.0, 0.5)},
	{"purple", colorutil.RGB(0.5, 0.0, 0.5)},
	{"maroon", colorutil.RGB(0.5, 0.0, 0.0)},
	{"gold", colorutil.RGB(1.0, 0.84, 0.0)},
	{"silver", colorutil.RGB(0.75, 0.75, 0.75)},
	{"pink", colorutil.RGB(1.0, 0.75, 0.8)},
	{"sky_blue", colorutil.RGB(0.53, 0.81, 0.92)},
	{"coral", colorutil.RGB(1.0, 0.5, 0.31)},
	{"turquoise", colorutil.RGB(0.25, 0.88, 0.82)},
	{"lavender", colorutil.RGB(0.9, 0.9, 0.98)},
	{"tan", colorutil.RGB(0.82, 0.71, 0.55)},
	{"beige", colorutil.RGB(0.96, 0.96, 0.86)},
	{"mint", colorutil.RGB(0.6, 1.0, 0.6)},
	{"indigo", colorutil.RGB(0.29, 0.0, 0.51)},
	{"salmon", colorutil.RGB(0.98, 0.5, 0.45)},
}

// BasicColors returns a copy of the reference table in lookup order.
func BasicColors() []BasicColor {
	out := make([]BasicColor, len(basicColors))
	copy(out, basicColors)
	return out
}

// LookupBasic returns the reference color for name.
func LookupBasic(name string) (colorutil.Color, bool) {
	for _, bc := range basicColors {
		if bc.Name == name {
			return bc.Color, true
		}
	}
	return colorutil.Color{}, false
}

// NearestBasic returns the reference entry closest to c in RGB space and
// its distance. Ties resolve to the earliest table entry.
func NearestBasic(c colorutil.Color) (string, float64) {
	nearest := ""
	best := 0.0
	for i, bc := range basicColors {
		d := colorutil.EuclideanRGBDistance(c, bc.Color)
		if i == 0 || d < best {
			best = d
			nearest = bc.Name
		}
	}
	return nearest, best
}
