package store

import (
	"scivis/internal/identity"
	"scivis/pkg/colorutil"
)

// Record is one resolved store entry.
type Record struct {
	ID    string
	Color colorutil.Color
	Name  string
}

// NewRecord names c and derives its ID.
func NewRecord(name string, c colorutil.Color) Record {
	return Record{ID: identity.GenerateID(c), Color: c, Name: name}
}

// KeyMode selects which record field keys a Collection.
type KeyMode int

const (
	KeyByID KeyMode = iota
	KeyByName
)

func (m KeyMode) String() string {
	if m == KeyByName {
		return "name"
	}
	return "id"
}

// Collection is an ordered set of records keyed by ID or by name.
// Putting a record whose key already exists replaces it in place.
type Collection struct {
	mode    KeyMode
	records []Record
	index   map[string]int
}

// NewCollection creates an empty collection.
func NewCollection(mode KeyMode) *Collection {
	return &Collection{
		mode:  mode,
		index: make(map[string]int),
	}
}

// CollectionOf builds a collection from records, later duplicates winning.
func CollectionOf(mode KeyMode, records ...Record) *Collection {
	c := NewCollection(mode)
	for _, r := range records {
		c.Put(r)
	}
	return c
}

// Mode returns the key mode of c.
func (c *Collection) Mode() KeyMode { return c.mode }

// Key returns the key r would have in c.
func (c *Collection) Key(r Record) string {
	if c.mode == KeyByName {
		return r.Name
	}
	return r.ID
}

// Put inserts or replaces r.
func (c *Collection) Put(r Record) {
	k := c.Key(r)
	if i, ok := c.index[k]; ok {
		c.records[i] = r
		return
	}
	c.index[k] = len(c.records)
	c.records = append(c.records, r)
}

// Get returns the record stored under key.
func (c *Collection) Get(key string) (Record, bool) {
	i, ok := c.index[key]
	if !ok {
		return Record{}, false
	}
	return c.records[i], true
}

// Len returns the number of records.
func (c *Collection) Len() int { return len(c.records) }

// Records returns a copy of the records in insertion order.
func (c *Collection) Records() []Record {
	out := make([]Record, len(c.records))
	copy(out, c.records)
	return out
}

// Names returns the set of record names.
func (c *Collection) Names() map[string]bool {
	names := make(map[string]bool, len(c.records))
	for _, r := range c.records {
		names[r.Name] = true
	}
	return names
}

// Colors returns the name to color view of c. With duplicate names the
// last record wins.
func (c *Collection) Colors() map[string]colorutil.Color {
	out := make(map[string]colorutil.Color, len(c.records))
	for _, r := range c.records {
		out[r.Name] = r.Color
	}
	return out
}

// Rekey returns a copy of c keyed by mode.
func (c *Collection) Rekey(mode KeyMode) *Collection {
	return CollectionOf(mode, c.records...)
}

// FindName returns the first record called name.
func (c *Collection) FindName(name string) (Record, bool) {
	for _, r := range c.records {
		if r.Name == name {
			return r, true
		}
	}
	return Record{}, false
}

// FindPrefix returns the first record whose ID starts with the RGB part
// of id.
func (c *Collection) FindPrefix(id string) (Record, bool) {
	p := identity.Prefix(id)
	for _, r := range c.records {
		if identity.Prefix(r.ID) == p {
			return r, true
		}
	}
	return Record{}, false
}
