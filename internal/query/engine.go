package query

import (
	"fmt"

	"scivis/internal/store"
	"scivis/pkg/colorutil"
)

// Loader supplies the records to query. *store.Store implements it.
type Loader interface {
	Load(opts store.LoadOptions) (*store.Collection, error)
}

// Engine runs queries against the current contents of a store.
type Engine struct {
	src Loader
}

// NewEngine creates an engine reading from src.
func NewEngine(src Loader) *Engine {
	return &Engine{src: src}
}

func (e *Engine) records() ([]store.Record, error) {
	c, err := e.src.Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return nil, fmt.Errorf("failed to load colors: %w", err)
	}
	return c.Records(), nil
}

// Similar returns the max records most similar to ref.
func (e *Engine) Similar(ref colorutil.Color, max int) ([]Match, error) {
	recs, err := e.records()
	if err != nil {
		return nil, err
	}
	return FindSimilar(ref, recs, max), nil
}

// Complementary returns the max records closest to the complement of ref.
func (e *Engine) Complementary(ref colorutil.Color, max int) ([]Match, error) {
	recs, err := e.records()
	if err != nil {
		return nil, err
	}
	return FindComplementary(ref, recs, max), nil
}

// SimilarByBrightness returns similar records ordered darkest first.
func (e *Engine) SimilarByBrightness(ref colorutil.Color, max int) ([]Match, error) {
	recs, err := e.records()
	if err != nil {
		return nil, err
	}
	return FindSimilarByBrightness(ref, recs, max), nil
}
