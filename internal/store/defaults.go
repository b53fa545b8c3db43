package store

import (
	"sort"

	"scivis/internal/naming"
)

// defaultNames are the basic colors a store falls back to when its file
// cannot be read.
var defaultNames = []string{
	"red", "orange", "yellow", "green", "cyan", "blue",
	"magenta", "black", "gray", "white", "brown", "purple",
}

// DefaultRecords returns the fallback color records.
func DefaultRecords() []Record {
	out := make([]Record, 0, len(defaultNames))
	for _, name := range defaultNames {
		c, ok := naming.LookupBasic(name)
		if !ok {
			continue
		}
		out = append(out, NewRecord(name, c))
	}
	return out
}

// DefaultCollection returns the fallback colors keyed by mode.
func DefaultCollection(mode KeyMode) *Collection {
	return CollectionOf(mode, DefaultRecords()...)
}

// BasicCollection returns the whole basic color table keyed by ID.
// Table entries sharing a value collapse to the later name.
func BasicCollection() *Collection {
	table := naming.BasicColors()
	c := NewCollection(KeyByID)
	for _, b := range table {
		c.Put(NewRecord(b.Name, b.Color))
	}
	return c
}

func sortFamilies(f []Family) {
	sort.SliceStable(f, func(i, j int) bool {
		return len(f[i].Records) > len(f[j].Records)
	})
}
