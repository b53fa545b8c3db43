package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"scivis/internal/identity"
	"scivis/pkg/colorutil"
)

// rawEntry is one top-level key of a store file, in file order.
type rawEntry struct {
	Key   string
	Value json.RawMessage
}

// objectEntry is the object form of an entry. Pointers distinguish an
// absent field from an empty one.
type objectEntry struct {
	Color *colorutil.Color `json:"color"`
	ID    *string          `json:"id"`
	Name  *string          `json:"name"`
}

var (
	errNoColor   = errors.New("missing color")
	errBadShape  = errors.New("entry is neither a color array nor an object")
	errNotObject = errors.New("store is not a JSON object")
)

// decodeObject reads the top-level object of data, keeping key order.
func decodeObject(data []byte) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errNotObject
	}

	var entries []rawEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("value of %q: %w", key, err)
		}
		entries = append(entries, rawEntry{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after store object")
	}
	return entries, nil
}

// parseEntry resolves one entry to a record.
//
//	name: [r, g, b]                  legacy, ID derived from the color
//	id:   {"color": .., "name": ..}  ID-keyed
//	name: {"color": .., "id": ..}    name-keyed
//
// An object carrying both or neither of id and name is keyed by ID when
// the key looks like one, and by name otherwise.
func parseEntry(key string, raw json.RawMessage) (Record, error) {
	switch firstByte(raw) {
	case '[':
		var c colorutil.Color
		if err := json.Unmarshal(raw, &c); err != nil {
			return Record{}, err
		}
		return NewRecord(key, c), nil
	case '{':
		var obj objectEntry
		if err := json.Unmarshal(raw, &obj); err != nil {
			return Record{}, err
		}
		if obj.Color == nil {
			return Record{}, errNoColor
		}
		return resolveObject(key, obj), nil
	default:
		return Record{}, errBadShape
	}
}

func resolveObject(key string, obj objectEntry) Record {
	c := *obj.Color
	switch {
	case obj.ID != nil && obj.Name == nil:
		return Record{ID: *obj.ID, Color: c, Name: key}
	case obj.Name != nil && obj.ID == nil:
		return Record{ID: key, Color: c, Name: *obj.Name}
	case identity.IsID(key):
		name := "color_" + identity.Prefix(key)
		if obj.Name != nil {
			name = *obj.Name
		}
		return Record{ID: key, Color: c, Name: name}
	default:
		id := identity.GenerateID(c)
		if obj.ID != nil {
			id = *obj.ID
		}
		return Record{ID: id, Color: c, Name: key}
	}
}

func firstByte(raw json.RawMessage) byte {
	b := bytes.TrimLeft(raw, " \t\r\n")
	if len(b) == 0 {
		return 0
	}
	return b[0]
}

// Normalize resolves every entry of a store document into an ID-keyed
// collection. Entries that cannot be resolved are skipped and returned as
// EntryErrors; the error is non-nil only when data is not a JSON object.
func Normalize(data []byte) (*Collection, []error, error) {
	records, skipped, err := normalizeRecords(data)
	if err != nil {
		return nil, nil, err
	}
	return CollectionOf(KeyByID, records...), skipped, nil
}

// normalizeRecords is Normalize without deduplication.
func normalizeRecords(data []byte) ([]Record, []error, error) {
	entries, err := decodeObject(data)
	if err != nil {
		return nil, nil, err
	}
	records := make([]Record, 0, len(entries))
	var skipped []error
	for _, e := range entries {
		r, err := parseEntry(e.Key, e.Value)
		if err != nil {
			skipped = append(skipped, &EntryError{Key: e.Key, Err: err})
			continue
		}
		records = append(records, r)
	}
	return records, skipped, nil
}

type idKeyedValue struct {
	Color colorutil.Color `json:"color"`
	Name  string          `json:"name"`
}

type nameKeyedValue struct {
	Color colorutil.Color `json:"color"`
	ID    string          `json:"id"`
}

// encodeCollection writes c as an indented JSON object in record order.
func encodeCollection(c *Collection) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range c.records {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(c.Key(r))
		if err != nil {
			return nil, err
		}
		var v []byte
		if c.mode == KeyByID {
			v, err = json.Marshal(idKeyedValue{Color: r.Color, Name: r.Name})
		} else {
			v, err = json.Marshal(nameKeyedValue{Color: r.Color, ID: r.ID})
		}
		if err != nil {
			return nil, fmt.Errorf("encode %q: %w", r.Name, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
