// Package extract pulls representative colors out of images.
//
// Dominant colors come from frequency counting over quantized pixels.
// Image palettes come from clustering, see ExtractPalette.
package extract

import (
	"image"
	"image/color"
	"math"
	"sort"

	"scivis/pkg/colorutil"
)

// Options controls dominant color counting.
type Options struct {
	ExcludeWhite   bool
	WhiteThreshold float64
	// Precision is the quantization step applied to every channel.
	Precision float64
}

// DefaultOptions excludes near-white buckets and quantizes to 0.05.
func DefaultOptions() Options {
	return Options{
		ExcludeWhite:   true,
		WhiteThreshold: 0.9,
		Precision:      0.05,
	}
}

// Bucket is one quantized color and the number of pixels that fell in it.
type Bucket struct {
	Color colorutil.Color
	Count int
}

type bucketKey [3]int

// ExtractDominant counts quantized pixel colors of img and returns the k
// most frequent, most frequent first. Buckets with equal counts keep the
// order in which they were first seen in a row-major scan.
func ExtractDominant(img image.Image, k int, opts Options) []Bucket {
	if k <= 0 {
		return nil
	}
	step := opts.Precision
	if step <= 0 {
		step = DefaultOptions().Precision
	}

	counts := make(map[bucketKey]int)
	var order []bucketKey
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			key := bucketKey{quantize(n.R, step), quantize(n.G, step), quantize(n.B, step)}
			if _, seen := counts[key]; !seen {
				order = append(order, key)
			}
			counts[key]++
		}
	}

	out := make([]Bucket, 0, len(order))
	for _, key := range order {
		c := colorutil.RGB(float64(key[0])*step, float64(key[1])*step, float64(key[2])*step)
		if opts.ExcludeWhite && isWhite(c, opts.WhiteThreshold) {
			continue
		}
		out = append(out, Bucket{Color: c, Count: counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if len(out) > k {
		out = out[:k]
	}
	return out
}

// quantize returns the index of the nearest multiple of step to v/255,
// halves rounding to even.
func quantize(v uint8, step float64) int {
	return int(math.RoundToEven(float64(v) / 255 / step))
}

func isWhite(c colorutil.Color, threshold float64) bool {
	return c.R >= threshold && c.G >= threshold && c.B >= threshold
}
