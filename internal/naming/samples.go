package naming

import (
	"strings"

	"scivis/pkg/colorutil"
)

// Sample is a generated color with its descriptive name.
type Sample struct {
	Name  string
	Color colorutil.Color
}

// SampleSpectrum walks the hue wheel in 30 degree steps at three
// saturation and three value levels and names each color.
func SampleSpectrum() []Sample {
	levels := []float64{0.3, 0.7, 1.0}
	samples := make([]Sample, 0, 12*len(levels)*len(levels))
	for h := 0; h < 360; h += 30 {
		for _, s := range levels {
			for _, v := range levels {
				c := colorutil.HSVToRGB(float64(h), s, v)
				samples = append(samples, Sample{Name: GenerateName(c, "", 0), Color: c})
			}
		}
	}
	return samples
}

// Rename derives a new descriptive name for a color previously called old.
// The last underscore-separated part of old is offered as naming context.
// The result is unique within taken and is added to it.
func Rename(old string, c colorutil.Color, taken map[string]bool) string {
	context := ""
	if parts := strings.Split(old, "_"); len(parts) > 1 {
		context = parts[len(parts)-1]
	}
	name := Unique(GenerateName(c, context, 0), taken)
	taken[name] = true
	return name
}
