// Package naming builds descriptive, identifier-friendly color names such as
// "light_sky_blue" or "vivid_red_from_sunset" from a color's HSV position
// relative to a table of basic colors.
package naming

import (
	"strconv"
	"strings"
	"unicode"

	"scivis/pkg/colorutil"
)

// Intensity modifiers (from HSV value).
const (
	VeryLight = "very_light"
	Light     = "light"
	Medium    = "medium"
	Dark      = "dark"
	VeryDark  = "very_dark"
	Off       = "off"
)

// Saturation modifiers (from HSV saturation, conditioned on value).
const (
	Vivid   = "vivid"
	Bright  = "bright"
	Muted   = "muted"
	Grayish = "grayish"
)

// maxContextLen is the longest sanitized source context kept in a name.
const maxContextLen = 15

// GenerateName returns a descriptive name for c. A non-empty context such
// as an image file name contributes a "from_<ctx>" part, and count > 0
// appends "_<count>" for disambiguation.
func GenerateName(c colorutil.Color, context string, count int) string {
	_, s, v := colorutil.RGBToHSV(c)

	basic, _ := NearestBasic(c)
	intensity := intensityModifier(v)
	saturation := saturationModifier(s, v)

	switch {
	case v < 0.15:
		basic, intensity, saturation = "black", "", ""
	case v > 0.95 && s < 0.05:
		basic, intensity, saturation = "white", "", ""
	case s < 0.08:
		switch {
		case v > 0.8:
			basic, intensity = "white", Off
		case v < 0.2:
			basic, intensity = "black", Off
		default:
			basic = "gray"
			switch {
			case v > 0.65:
				intensity = Light
			case v < 0.35:
				intensity = Dark
			default:
				intensity = Medium
			}
		}
		saturation = ""
	}

	var parts []string
	switch {
	case intensity != "" && saturation != "":
		// Only one modifier survives; saturation wins where it is extreme.
		if s < 0.3 || s > 0.8 {
			parts = append(parts, saturation)
		} else {
			parts = append(parts, intensity)
		}
	case intensity != "":
		parts = append(parts, intensity)
	case saturation != "":
		parts = append(parts, saturation)
	}
	parts = append(parts, basic)

	if ctx := SanitizeContext(context); ctx != "" {
		parts = append(parts, "from_"+ctx)
	}

	name := strings.Join(parts, "_")
	if count > 0 {
		name += "_" + strconv.Itoa(count)
	}
	return name
}

func intensityModifier(v float64) string {
	switch {
	case v > 0.85:
		return VeryLight
	case v > 0.65:
		return Light
	case v < 0.15:
		return VeryDark
	case v < 0.35:
		return Dark
	}
	return ""
}

func saturationModifier(s, v float64) string {
	switch {
	case s > 0.85 && v > 0.5:
		return Vivid
	case s > 0.65 && v > 0.4:
		return Bright
	case s < 0.15:
		return Grayish
	case s < 0.35:
		return Muted
	}
	return ""
}

// SanitizeContext reduces a source name like "trip-Sunset.png" to "sunset".
// Only sources containing '-' yield a context; the part after the last '-'
// is lowercased, cut at the first '.', and stripped to letters, digits and
// underscores. Results longer than 15 characters are dropped.
func SanitizeContext(source string) string {
	idx := strings.LastIndex(source, "-")
	if idx < 0 {
		return ""
	}
	ctx := strings.ToLower(source[idx+1:])
	if dot := strings.Index(ctx, "."); dot >= 0 {
		ctx = ctx[:dot]
	}

	var b strings.Builder
	n := 0
	for _, r := range ctx {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
			n++
		}
	}
	if n == 0 || n > maxContextLen {
		return ""
	}
	return b.String()
}

// Unique returns base, or base with the smallest "_N" suffix (N >= 1) not
// present in taken.
func Unique(base string, taken map[string]bool) string {
	if !taken[base] {
		return base
	}
	for i := 1; ; i++ {
		name := base + "_" + strconv.Itoa(i)
		if !taken[name] {
			return name
		}
	}
}
