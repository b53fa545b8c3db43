// Package identity derives deterministic content-based IDs for colors.
//
// An ID is 12 lowercase hex characters:
//
//	rrggbb hh ss vv
//
// where rrggbb are the truncated byte channels and hh, ss, vv are hue,
// saturation and value quantized to 0-255. Two colors share the 6-character
// prefix exactly when their truncated bytes match.
package identity

import (
	"fmt"
	"math"

	"scivis/pkg/colorutil"
)

// Length is the number of hex characters in a generated ID.
const Length = 12

// PrefixLength is the number of leading characters encoding the RGB bytes.
const PrefixLength = 6

// GenerateID returns the ID of c. Alpha does not participate.
//
// The HSV part is computed on 255-scaled channels and the hue is truncated
// to whole degrees before quantization. This differs from
// colorutil.RGBToHSV for some inputs and must stay as is: stored IDs depend
// on it.
func GenerateID(c colorutil.Color) string {
	hexPart := fmt.Sprintf("%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))

	r, g, b := c.R*255, c.G*255, c.B*255
	maxVal := math.Max(r, math.Max(g, b))
	minVal := math.Min(r, math.Min(g, b))
	delta := maxVal - minVal

	var h float64
	switch {
	case delta == 0:
		h = 0
	case maxVal == r:
		h = colorutil.FloorMod((g-b)/delta, 6)
	case maxVal == g:
		h = (b-r)/delta + 2
	default:
		h = (r-g)/delta + 4
	}
	hueDeg := int(colorutil.FloorMod(h*60, 360))

	var s float64
	if maxVal != 0 {
		s = delta / maxVal
	}
	v := maxVal / 255

	return hexPart +
		fmt.Sprintf("%02x", int(float64(hueDeg)*255/360)) +
		fmt.Sprintf("%02x", int(s*255)) +
		fmt.Sprintf("%02x", int(v*255))
}

// IsID reports whether key looks like a generated ID: at least 12
// characters, all lowercase hex digits.
func IsID(key string) bool {
	if len(key) < Length {
		return false
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// Prefix returns the RGB part of an ID, or the whole string when shorter.
func Prefix(id string) string {
	if len(id) < PrefixLength {
		return id
	}
	return id[:PrefixLength]
}
