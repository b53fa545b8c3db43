package main

import (
	"fmt"
	"sort"

	"scivis/internal/store"
	"scivis/pkg/colorutil"
)

var sortKeys = []string{"name", "rgb", "hue", "saturation", "brightness"}

func validSort(key string) bool {
	for _, k := range sortKeys {
		if k == key {
			return true
		}
	}
	return false
}

// sortRecords orders recs in place. Saturation and brightness sort from
// high to low, the others ascending.
func sortRecords(recs []store.Record, key string) {
	var less func(a, b store.Record) bool
	switch key {
	case "name":
		less = func(a, b store.Record) bool { return a.Name < b.Name }
	case "rgb":
		less = func(a, b store.Record) bool { return byteSum(a.Color) < byteSum(b.Color) }
	case "hue":
		less = func(a, b store.Record) bool { return hsv(a.Color, 0) < hsv(b.Color, 0) }
	case "saturation":
		less = func(a, b store.Record) bool { return hsv(a.Color, 1) > hsv(b.Color, 1) }
	case "brightness":
		less = func(a, b store.Record) bool { return hsv(a.Color, 2) > hsv(b.Color, 2) }
	default:
		return
	}
	sort.SliceStable(recs, func(i, j int) bool { return less(recs[i], recs[j]) })
}

func byteSum(c colorutil.Color) int {
	r, g, b := c.Bytes()
	return int(r) + int(g) + int(b)
}

func hsv(c colorutil.Color, i int) float64 {
	h, s, v := colorutil.RGBToHSV(c)
	return [3]float64{h, s, v}[i]
}

const maxNameLen = 20

func cellLabel(r store.Record) string {
	name := r.Name
	if len(name) > maxNameLen {
		name = name[:maxNameLen-3] + "..."
	}
	cr, cg, cb := r.Color.Bytes()
	h, s, v := colorutil.RGBToHSV(r.Color)
	return fmt.Sprintf("%s\nRGB: [%d, %d, %d]\n%s\nH: %.0f° S: %.0f%% V: %.0f%%",
		name, cr, cg, cb, r.Color.Hex(), h, s*100, v*100)
}
