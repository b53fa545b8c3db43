package extract

import (
	"log/slog"
	"path/filepath"
	"strings"

	"scivis/internal/logging"
	"scivis/internal/naming"
	"scivis/internal/store"
)

// Extractor reads images from disk and feeds their colors into a store.
type Extractor struct {
	Decoder Decoder
	Logger  *slog.Logger
	Options Options
}

// New returns an extractor with the default decoder and options.
func New(logger *slog.Logger) *Extractor {
	return &Extractor{
		Decoder: FileDecoder{MaxDimension: DefaultMaxDimension},
		Logger:  logging.OrNop(logger),
		Options: DefaultOptions(),
	}
}

func (e *Extractor) decoder() Decoder {
	if e.Decoder == nil {
		return FileDecoder{MaxDimension: DefaultMaxDimension}
	}
	return e.Decoder
}

// ReadDominant decodes path and returns its k dominant colors. Decode
// failures are returned as *ImageReadError.
func (e *Extractor) ReadDominant(path string, k int) ([]Bucket, error) {
	img, err := e.decoder().Decode(path)
	if err != nil {
		return nil, err
	}
	return ExtractDominant(img, k, e.Options), nil
}

// Dominant is ReadDominant with decode failures logged and reported as an
// empty result.
func (e *Extractor) Dominant(path string, k int) []Bucket {
	buckets, err := e.ReadDominant(path, k)
	if err != nil {
		logging.OrNop(e.Logger).Warn("color extraction failed", "path", path, "err", err)
		return nil
	}
	return buckets
}

// AddFromImage names the dominant colors of path after the image and
// upserts them into st. Names are made unique against the store before
// prefix is applied. It returns the added ID to name mapping, in the
// order of ids.
func (e *Extractor) AddFromImage(path string, st *store.Store, k int, prefix string) (added map[string]string, ids []string, err error) {
	return e.AddBuckets(path, e.Dominant(path, k), st, prefix)
}

// AddBuckets is AddFromImage for buckets already extracted from path.
func (e *Extractor) AddBuckets(path string, buckets []Bucket, st *store.Store, prefix string) (added map[string]string, ids []string, err error) {
	if len(buckets) == 0 {
		return map[string]string{}, nil, nil
	}
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	added = make(map[string]string, len(buckets))
	err = st.Update(func(c *store.Collection) error {
		taken := c.Names()
		for _, b := range buckets {
			name := naming.Unique(naming.GenerateName(b.Color, stem, 0), taken)
			if prefix != "" {
				name = prefix + "_" + name
			}
			taken[name] = true

			r := store.NewRecord(name, b.Color)
			c.Put(r)
			if _, dup := added[r.ID]; !dup {
				ids = append(ids, r.ID)
			}
			added[r.ID] = name
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return added, ids, nil
}
