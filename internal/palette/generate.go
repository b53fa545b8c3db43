// Package palette picks coordinated colors out of a color library and
// manages named palettes and gradients.
package palette

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"scivis/internal/logging"
	"scivis/internal/naming"
	"scivis/internal/store"
	"scivis/pkg/colorutil"
)

// Kind is a palette selection strategy.
type Kind string

const (
	Complementary      Kind = "complementary"
	Brightness         Kind = "brightness"
	Similar            Kind = "similar"
	Triadic            Kind = "triadic"
	Tetradic           Kind = "tetradic"
	Analogous          Kind = "analogous"
	Monochromatic      Kind = "monochromatic"
	SplitComplementary Kind = "split-complementary"
)

var kinds = []Kind{
	Complementary, Brightness, Similar, Triadic,
	Tetradic, Analogous, Monochromatic, SplitComplementary,
}

var descriptions = map[Kind]string{
	Complementary:      "colors opposite on the color wheel",
	Brightness:         "dark to light",
	Similar:            "similar colors with varying saturation",
	Triadic:            "three colors evenly spaced on the wheel",
	Tetradic:           "two complementary pairs",
	Analogous:          "neighbors on the color wheel",
	Monochromatic:      "one hue, varying saturation and brightness",
	SplitComplementary: "a base color and the two neighbors of its complement",
}

// Kinds returns every supported kind.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	copy(out, kinds)
	return out
}

// Description returns a one-line summary of k.
func (k Kind) Description() string { return descriptions[k] }

// ParseKind validates s as a Kind.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if string(k) == strings.ToLower(s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown palette type %q", s)
}

// Hue offsets as fractions of the color wheel.
const (
	splitOffset     = 0.08
	analogousStep   = 0.08
	monoTolerance   = 0.05
	complementLimit = 0.2
	familyTolerance = 0.3
)

// entry is a record with its HSV coordinates, hue as a fraction of a turn.
type entry struct {
	store.Record
	h, s, v float64
}

// Generator selects palettes from a record set.
type Generator struct {
	log *slog.Logger
}

// NewGenerator creates a Generator. A nil logger discards output.
func NewGenerator(l *slog.Logger) *Generator {
	return &Generator{log: logging.OrNop(l)}
}

// Generate is Generator.Generate without logging.
func Generate(recs []store.Record, family string, num int, kind Kind) ([]store.Record, string) {
	return NewGenerator(nil).Generate(recs, family, num, kind)
}

// Generate picks num records of the given kind, restricted to family when
// it is non-empty, and returns them with a title.
func (g *Generator) Generate(recs []store.Record, family string, num int, kind Kind) ([]store.Record, string) {
	if len(recs) == 0 {
		g.log.Warn("color library is empty")
		return nil, "Empty palette"
	}
	if num <= 0 {
		return nil, fallbackTitle(kind)
	}

	filtered := recs
	if family != "" {
		filtered = FilterFamily(recs, family)
		if len(filtered) == 0 {
			g.log.Warn("no colors in family, using all colors", "family", family)
			filtered = recs
		}
	}

	entries := make([]entry, 0, len(filtered))
	for _, r := range filtered {
		h, s, v := colorutil.RGBToHSV(r.Color)
		entries = append(entries, entry{Record: r, h: h / 360, s: s, v: v})
	}

	selected, title := pick(entries, num, kind)
	if len(selected) == 0 {
		selected = spread(sortedBy(entries, byHue), num)
		if title == "" {
			title = fallbackTitle(kind)
		}
	}
	return records(selected), title
}

func pick(entries []entry, num int, kind Kind) ([]entry, string) {
	switch kind {
	case Complementary:
		return complementary(entries, num)
	case Brightness:
		return spread(sortedBy(entries, byValue), num), "Dark to light"
	case Similar:
		return spread(sortedBy(entries, bySaturationDesc), num), "Similar colors (saturation)"
	case Triadic:
		if sel := aroundBase(entries, 1.0/3, 2.0/3); sel != nil {
			return sel, "Triadic"
		}
		return spread(sortedBy(entries, byHue), 3), "Triadic (approximate)"
	case Tetradic:
		if sel := aroundBase(entries, 0.25, 0.5, 0.75); sel != nil {
			return sel, "Tetradic"
		}
		return spread(sortedBy(entries, byHue), 4), "Tetradic (approximate)"
	case Analogous:
		return analogous(entries, num), "Analogous"
	case Monochromatic:
		if sel := monochromatic(entries, num); len(sel) > 0 {
			return sel, "Monochromatic"
		}
		return nil, "Monochromatic (approximate)"
	case SplitComplementary:
		if num >= 3 {
			if sel := aroundBase(entries, 0.5-splitOffset, 0.5+splitOffset); sel != nil {
				return sel, "Split complementary"
			}
		}
		return nil, "Split complementary (approximate)"
	}
	return nil, ""
}

func complementary(entries []entry, num int) ([]entry, string) {
	switch num {
	case 2:
		base := entries[0]
		target := math.Mod(base.h+0.5, 1)
		best, bestDiff := -1, complementLimit
		for i := 1; i < len(entries); i++ {
			if d := hueDiff(entries[i].h, target); d < bestDiff {
				best, bestDiff = i, d
			}
		}
		if best >= 0 {
			return []entry{base, entries[best]}, "Complementary"
		}
	case 3:
		if sel := aroundBase(entries, 0.5-splitOffset, 0.5+splitOffset); sel != nil {
			return sel, "Split complementary"
		}
	}
	return spread(sortedBy(entries, byHue), num), "Complementary (even hue spread)"
}

// aroundBase returns the base color followed by the colors closest in hue
// to the base hue plus each offset.
func aroundBase(entries []entry, offsets ...float64) []entry {
	if len(entries) == 0 {
		return nil
	}
	base := baseColor(entries)
	out := []entry{base}
	for _, off := range offsets {
		c, ok := closestHue(entries, math.Mod(base.h+off, 1))
		if !ok {
			return nil
		}
		out = append(out, c)
	}
	return out
}

func analogous(entries []entry, num int) []entry {
	base := baseColor(entries)
	out := []entry{base}
	for i := 1; i < (num+1)/2; i++ {
		off := float64(i) * analogousStep
		if c, ok := closestHue(entries, colorutil.FloorMod(base.h-off, 1)); ok {
			out = append(out, c)
		}
		if c, ok := closestHue(entries, math.Mod(base.h+off, 1)); ok && len(out) < num {
			out = append(out, c)
		}
	}
	if len(out) > num {
		out = out[:num]
	}
	return out
}

func monochromatic(entries []entry, num int) []entry {
	base := sortedBy(entries, bySaturationDesc)[0]
	var same []entry
	for _, e := range entries {
		if hueDiff(e.h, base.h) < monoTolerance {
			same = append(same, e)
		}
	}
	return spread(sortedBy(same, byValue), num)
}

// baseColor picks the entry whose saturation and value are closest to 0.7.
func baseColor(entries []entry) entry {
	return sortedBy(entries, func(a, b entry) bool {
		return sv(a) < sv(b)
	})[0]
}

func sv(e entry) float64 {
	return math.Abs(e.s-0.7) + math.Abs(e.v-0.7)
}

// closestHue returns the first entry nearest to hue h.
func closestHue(entries []entry, h float64) (entry, bool) {
	var best entry
	found := false
	minDiff := 1.0
	for _, e := range entries {
		if d := hueDiff(e.h, h); d < minDiff {
			best, minDiff, found = e, d, true
		}
	}
	return best, found
}

func hueDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	return math.Min(d, 1-d)
}

// spread picks num entries at evenly spaced indices of sorted, or all of
// them when there are fewer than num.
func spread(sorted []entry, num int) []entry {
	if len(sorted) < num {
		return sorted
	}
	step := float64(len(sorted)) / float64(num)
	out := make([]entry, 0, num)
	for i := 0; i < num; i++ {
		out = append(out, sorted[int(float64(i)*step)])
	}
	return out
}

func byHue(a, b entry) bool            { return a.h < b.h }
func byValue(a, b entry) bool          { return a.v < b.v }
func bySaturationDesc(a, b entry) bool { return a.s > b.s }

func sortedBy(entries []entry, less func(a, b entry) bool) []entry {
	out := make([]entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}

func records(entries []entry) []store.Record {
	out := make([]store.Record, len(entries))
	for i, e := range entries {
		out[i] = e.Record
	}
	return out
}

func fallbackTitle(kind Kind) string {
	return string(kind) + " palette (approximate)"
}

// FilterFamily keeps records whose name contains family, or, when family
// names a basic color, records with any channel within 0.3 of it.
func FilterFamily(recs []store.Record, family string) []store.Record {
	family = strings.ToLower(family)
	basic, isBasic := naming.LookupBasic(family)
	var out []store.Record
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), family) || (isBasic && nearAnyChannel(r.Color, basic)) {
			out = append(out, r)
		}
	}
	return out
}

func nearAnyChannel(a, b colorutil.Color) bool {
	return math.Abs(a.R-b.R) < familyTolerance ||
		math.Abs(a.G-b.G) < familyTolerance ||
		math.Abs(a.B-b.B) < familyTolerance
}
