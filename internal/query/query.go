// Package query ranks stored colors against a reference color.
//
// Every query scans the whole record set; none of them modify it.
package query

import (
	"math"
	"sort"

	"scivis/internal/store"
	"scivis/pkg/colorutil"
)

// Match is one ranked result.
type Match struct {
	Name  string
	Color colorutil.Color
	Score float64
	ID    string
}

// FindSimilar ranks records by RGB similarity to ref, best first.
func FindSimilar(ref colorutil.Color, records []store.Record, max int) []Match {
	return rank(records, max, func(r store.Record) float64 {
		return colorutil.SimilarityScore(colorutil.EuclideanRGBDistance(ref, r.Color))
	})
}

// FindComplementary ranks records by how close their hue is to the hue
// opposite ref.
func FindComplementary(ref colorutil.Color, records []store.Record, max int) []Match {
	h, _, _ := colorutil.RGBToHSV(ref)
	target := math.Mod(h+180, 360)
	return rank(records, max, func(r store.Record) float64 {
		rh, _, _ := colorutil.RGBToHSV(r.Color)
		return 1 - colorutil.HueDistance(rh, target)/180
	})
}

// FindSimilarByBrightness takes the 2*max most similar records and orders
// them darkest first.
func FindSimilarByBrightness(ref colorutil.Color, records []store.Record, max int) []Match {
	if max <= 0 {
		return nil
	}
	out := FindSimilar(ref, records, 2*max)
	sort.SliceStable(out, func(i, j int) bool {
		return colorutil.Brightness(out[i].Color) < colorutil.Brightness(out[j].Color)
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}

func rank(records []store.Record, max int, score func(store.Record) float64) []Match {
	if max <= 0 {
		return nil
	}
	out := make([]Match, 0, len(records))
	for _, r := range records {
		out = append(out, Match{Name: r.Name, Color: r.Color, Score: score(r), ID: r.ID})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	if len(out) > max {
		out = out[:max]
	}
	return out
}
