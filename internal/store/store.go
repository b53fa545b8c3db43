// Package store persists named colors in a JSON file.
//
// A store file is one JSON object. Entries may be legacy name to color
// arrays, ID-keyed objects or name-keyed objects, mixed freely; every
// entry resolves to an (ID, color, name) record on load.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"scivis/internal/identity"
	"scivis/internal/logging"
	"scivis/pkg/colorutil"
)

// LoadOptions selects the view Load returns.
type LoadOptions struct {
	// IncludeMeta keeps IDs on the returned records.
	IncludeMeta bool
	// UseIDAsKey keys the collection by ID. Ignored without IncludeMeta.
	UseIDAsKey bool
}

// Store reads and writes one color file. It is safe for concurrent use
// within a process; it does not lock against other processes.
type Store struct {
	path   string
	strict bool
	log    *slog.Logger

	mu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for skipped entries and fallbacks.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = logging.OrNop(l) }
}

// WithStrict makes read failures errors instead of falling back to the
// default colors.
func WithStrict(strict bool) Option {
	return func(s *Store) { s.strict = strict }
}

// New creates a store backed by path. An empty path means no file: lookups
// use the built-in default colors.
func New(path string, opts ...Option) *Store {
	s := &Store{path: path, log: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Load reads the store.
func (s *Store) Load(opts LoadOptions) (*Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(opts)
}

func keyMode(opts LoadOptions) KeyMode {
	if opts.IncludeMeta && opts.UseIDAsKey {
		return KeyByID
	}
	return KeyByName
}

func (s *Store) load(opts LoadOptions) (*Collection, error) {
	records, err := s.readRecords()
	if err != nil {
		return nil, err
	}
	return CollectionOf(keyMode(opts), records...), nil
}

// readRecords returns every resolved entry in file order, or the default
// records when the file cannot be read and the store is not strict.
func (s *Store) readRecords() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s.fallback(&StoreReadError{Path: s.path, Err: err})
	}
	records, skipped, err := normalizeRecords(data)
	if err != nil {
		return s.fallback(&StoreReadError{Path: s.path, Err: err})
	}
	for _, e := range skipped {
		s.log.Warn("skipping color entry", "path", s.path, "err", e)
	}
	return records, nil
}

func (s *Store) fallback(err *StoreReadError) ([]Record, error) {
	if s.strict {
		return nil, err
	}
	if errors.Is(err, fs.ErrNotExist) {
		s.log.Info("color store not found, using defaults", "path", s.path)
	} else {
		s.log.Warn("color store unreadable, using defaults", "path", s.path, "err", err.Err)
	}
	return DefaultRecords(), nil
}

// Save writes c keyed by ID or by name. Records are deduplicated by the
// written key, the last record winning at the first record's position.
func (s *Store) Save(c *Collection, useIDAsKey bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(c, useIDAsKey)
}

func (s *Store) save(c *Collection, useIDAsKey bool) error {
	if s.path == "" {
		return errors.New("store has no path")
	}
	mode := KeyByName
	if useIDAsKey {
		mode = KeyByID
	}
	data, err := encodeCollection(c.Rekey(mode))
	if err != nil {
		return fmt.Errorf("failed to encode colors: %w", err)
	}
	if err := writeFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// AddColor upserts c under its ID and saves the store ID-keyed.
func (s *Store) AddColor(name string, c colorutil.Color) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, err := s.load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return "", err
	}
	r := NewRecord(name, c)
	coll.Put(r)
	if err := s.save(coll, true); err != nil {
		return "", err
	}
	return r.ID, nil
}

// Update applies fn to the ID-keyed collection and saves the result in
// one locked step.
func (s *Store) Update(fn func(c *Collection) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	coll, err := s.load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return err
	}
	if err := fn(coll); err != nil {
		return err
	}
	return s.save(coll, true)
}

// GetColor looks up a color by exact ID, then by the first record with
// that name in file order.
func (s *Store) GetColor(nameOrID string) (colorutil.Color, error) {
	if s.path == "" {
		return defaultColor(nameOrID)
	}
	s.mu.Lock()
	records, err := s.readRecords()
	s.mu.Unlock()
	if err != nil {
		return colorutil.Color{}, err
	}

	if r, ok := CollectionOf(KeyByID, records...).Get(nameOrID); ok {
		return r.Color, nil
	}
	if r, ok := CollectionOf(KeyByID, records...).FindName(nameOrID); ok {
		return r.Color, nil
	}
	return colorutil.Color{}, &ColorNotFoundError{Key: nameOrID}
}

// GetColorByID looks up a record by exact ID, falling back to the first
// record sharing its RGB prefix.
func (s *Store) GetColorByID(id string) (Record, error) {
	coll, err := s.Load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return Record{}, err
	}
	if r, ok := coll.Get(id); ok {
		return r, nil
	}
	if r, ok := coll.FindPrefix(id); ok {
		return r, nil
	}
	return Record{}, &ColorNotFoundError{Key: id}
}

func defaultColor(key string) (colorutil.Color, error) {
	records := DefaultRecords()
	for _, r := range records {
		if r.Name == key {
			return r.Color, nil
		}
	}
	for _, r := range records {
		if r.ID == key {
			return r.Color, nil
		}
	}
	return colorutil.Color{}, &ColorNotFoundError{Key: key}
}

// ConvertedPath returns where Convert writes the canonical copy of src.
func ConvertedPath(src string) string {
	ext := filepath.Ext(src)
	return strings.TrimSuffix(src, ext) + "_id_based.json"
}

// Convert rewrites src in the ID-keyed shape next to it and returns the
// new path and record count.
func Convert(src string, opts ...Option) (string, int, error) {
	in := New(src, append(opts, WithStrict(true))...)
	coll, err := in.Load(LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return "", 0, err
	}
	dst := ConvertedPath(src)
	if err := New(dst, opts...).Save(coll, true); err != nil {
		return "", 0, err
	}
	return dst, coll.Len(), nil
}

// BackupPath returns where Upgrade keeps the original of path.
func BackupPath(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".json.bak"
}

// NeedsUpgrade reports whether a store document is not in the ID-keyed
// shape, judged by its first entry.
func NeedsUpgrade(data []byte) (bool, error) {
	entries, err := decodeObject(data)
	if err != nil {
		return false, err
	}
	if len(entries) == 0 {
		return false, nil
	}
	first := entries[0]
	if !identity.IsID(first.Key) {
		return true, nil
	}
	if firstByte(first.Value) == '{' {
		var obj objectEntry
		if err := json.Unmarshal(first.Value, &obj); err == nil && obj.ID != nil && obj.Name == nil {
			return true, nil
		}
	}
	return false, nil
}

// Upgrade rewrites path in place in the ID-keyed shape when NeedsUpgrade
// says so, keeping the original bytes at BackupPath. It returns the backup
// path and record count, or an empty backup path when nothing changed.
func Upgrade(path string, opts ...Option) (string, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", 0, &StoreReadError{Path: path, Err: err}
	}
	need, err := NeedsUpgrade(data)
	if err != nil {
		return "", 0, &StoreReadError{Path: path, Err: err}
	}
	if !need {
		return "", 0, nil
	}
	coll, _, err := Normalize(data)
	if err != nil {
		return "", 0, &StoreReadError{Path: path, Err: err}
	}
	backup := BackupPath(path)
	if err := writeFileAtomic(backup, data, 0o644); err != nil {
		return "", 0, fmt.Errorf("failed to write backup: %w", err)
	}
	if err := New(path, opts...).Save(coll, true); err != nil {
		return "", 0, err
	}
	return backup, coll.Len(), nil
}

// Family is a group of records sharing an ID RGB prefix.
type Family struct {
	Prefix  string
	Records []Record
}

// Families groups c by ID prefix, largest group first. Equal sized groups
// keep the order their first member appears in c.
func Families(c *Collection) []Family {
	var out []Family
	index := make(map[string]int)
	for _, r := range c.records {
		p := identity.Prefix(r.ID)
		i, ok := index[p]
		if !ok {
			i = len(out)
			index[p] = i
			out = append(out, Family{Prefix: p})
		}
		out[i].Records = append(out[i].Records, r)
	}
	sortFamilies(out)
	return out
}
