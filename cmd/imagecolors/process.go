package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scivis/internal/config"
	"scivis/internal/extract"
	"scivis/internal/identity"
	"scivis/internal/query"
	"scivis/internal/render"
	"scivis/internal/store"
	"scivis/pkg/colorutil"
	"scivis/ui/viewer"
)

const (
	matchCount  = 5
	topFamilies = 5
	summaryFile = "color_extraction_summary.json"
)

type processor struct {
	cfg     *config.Config
	store   *store.Store
	ext     *extract.Extractor
	show    bool
	verbose bool
}

// imageResult is the ID to name mapping stored for one image, in
// extraction order.
type imageResult struct {
	ids   []string
	names map[string]string
}

// MarshalJSON keeps extraction order in the summary.
func (r imageResult) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, id := range r.ids {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(r.names[id])
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// outputDirFor mirrors the image's parent directory under the output dir.
func outputDirFor(outputDir, imagePath string) string {
	rel := imagePath
	if filepath.IsAbs(imagePath) {
		if wd, err := os.Getwd(); err == nil {
			if r, err := filepath.Rel(wd, imagePath); err == nil && !strings.HasPrefix(r, "..") {
				rel = r
			} else {
				rel = filepath.Base(imagePath)
			}
		}
	}
	return filepath.Join(outputDir, filepath.Dir(rel))
}

func shortID(id string) string {
	return clip(id, 6) + "..."
}

func clip(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func rgbText(c colorutil.Color) string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("RGB: [%d, %d, %d]", r, g, b)
}

func (p *processor) processImage(path string) (*imageResult, error) {
	fmt.Printf("Processing image: %s\n", path)
	k := p.cfg.Extract.NumColors

	buckets, err := p.ext.ReadDominant(path, k)
	if err != nil {
		return nil, err
	}
	if len(buckets) == 0 {
		fmt.Printf("  Warning: No dominant colors found in %s\n", path)
		return nil, nil
	}

	fmt.Printf("  Extracted %d colors:\n", len(buckets))
	for i, b := range buckets {
		r, g, bl := b.Color.Bytes()
		fmt.Printf("    Color %d: RGB=[%d, %d, %d], ID=%s, Count=%d\n",
			i+1, r, g, bl, identity.GenerateID(b.Color), b.Count)
	}

	names, ids, err := p.ext.AddBuckets(path, buckets, p.store, "")
	if err != nil {
		return nil, err
	}
	res := &imageResult{ids: ids, names: names}

	dir := outputDirFor(p.cfg.OutputDir, path)
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	colors := render.NewSheet("Dominant colors: " + base)
	for _, b := range buckets {
		id := identity.GenerateID(b.Color)
		colors.Swatch(b.Color, fmt.Sprintf("%s\nID: %s\nCount: %d", rgbText(b.Color), shortID(id), b.Count))
	}
	if err := p.save(colors, filepath.Join(dir, stem+"_colors.png"), "color visualization"); err != nil {
		return res, err
	}

	ref := buckets[0].Color
	refID := identity.GenerateID(ref)
	if len(ids) > 0 {
		refID = ids[0]
	}
	engine := query.NewEngine(p.store)

	similar, err := engine.Similar(ref, matchCount)
	if err != nil {
		return res, err
	}
	sheet := matchSheet("Similar colors: "+base, ref, refID, similar, "Similarity")
	if err := p.save(sheet, filepath.Join(dir, stem+"_similar.png"), "similar colors visualization"); err != nil {
		return res, err
	}

	comp, err := engine.Complementary(ref, matchCount)
	if err != nil {
		return res, err
	}
	sheet = matchSheet("Complementary colors: "+base, ref, refID, comp, "Comp. score")
	if err := p.save(sheet, filepath.Join(dir, stem+"_complementary.png"), "complementary colors visualization"); err != nil {
		return res, err
	}

	bright, err := engine.SimilarByBrightness(ref, matchCount)
	if err != nil {
		return res, err
	}
	sheet = matchSheet("Similar colors (dark to light): "+base, ref, refID, bright, "Similarity")
	if err := p.save(sheet, filepath.Join(dir, stem+"_brightness.png"), "dark-to-light colors visualization"); err != nil {
		return res, err
	}

	if p.show {
		viewer.Show(colors.Title, colors.Swatches())
	}
	return res, nil
}

func matchSheet(title string, ref colorutil.Color, refID string, matches []query.Match, scoreLabel string) *render.Sheet {
	s := render.NewSheet(title)
	s.Swatch(ref, fmt.Sprintf("Reference\n%s\nID: %s", rgbText(ref), refID))
	for _, m := range matches {
		s.Swatch(m.Color, fmt.Sprintf("%s\n%s\nID: %s\n%s: %.1f%%", m.Name, rgbText(m.Color), shortID(m.ID), scoreLabel, m.Score*100))
	}
	return s
}

func (p *processor) save(s *render.Sheet, path, what string) error {
	if err := s.SavePNG(path); err != nil {
		return err
	}
	fmt.Printf("  Saved %s to %s\n", what, path)
	return nil
}

func (p *processor) processDirectory(dir string) error {
	images, err := extract.FindImages(dir)
	if err != nil {
		fmt.Printf("Error scanning directory %s: %v\n", dir, err)
	}
	if len(images) == 0 {
		fmt.Printf("No image files found in %s\n", dir)
		return nil
	}
	fmt.Printf("Found %d image files in %s\n", len(images), dir)

	var order []string
	results := make(map[string]*imageResult)
	for i, img := range images {
		fmt.Printf("\nProcessing image %d/%d\n", i+1, len(images))
		res, err := p.processImage(img)
		if err != nil {
			fmt.Printf("  Error processing image %s: %v\n", img, err)
			continue
		}
		if res != nil && len(res.ids) > 0 {
			order = append(order, img)
			results[img] = res
		}
	}

	fmt.Printf("\nProcessed %d images successfully\n", len(order))
	fmt.Printf("All extracted colors are stored in %s\n", p.store.Path())

	summary, err := encodeSummary(order, results)
	if err != nil {
		return err
	}
	summaryPath := filepath.Join(p.cfg.OutputDir, summaryFile)
	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(summaryPath, summary, 0o644); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	fmt.Printf("Summary report saved to %s\n", summaryPath)

	lib, err := p.store.Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return err
	}
	printFamilies(lib)

	if p.verbose {
		fmt.Println("\nDetailed results:")
		for _, img := range order {
			fmt.Printf("  %s:\n", img)
			for _, id := range results[img].ids {
				if r, ok := lib.Get(id); ok {
					fmt.Printf("    %s: %s, ID=%s...\n", r.Name, strings.TrimPrefix(rgbText(r.Color), "RGB: "), clip(id, 10))
				}
			}
		}
	}
	return nil
}

func encodeSummary(order []string, results map[string]*imageResult) ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, img := range order {
		if i > 0 {
			b.WriteByte(',')
		}
		k, err := json.Marshal(img)
		if err != nil {
			return nil, err
		}
		v, err := results[img].MarshalJSON()
		if err != nil {
			return nil, err
		}
		b.Write(k)
		b.WriteByte(':')
		b.Write(v)
	}
	b.WriteByte('}')

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(b.String()), "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

func printFamilies(lib *store.Collection) {
	fmt.Printf("Total unique colors in database: %d\n", lib.Len())
	families := store.Families(lib)
	fmt.Printf("Number of color families: %d\n", len(families))
	fmt.Printf("Top %d color families by number of variations:\n", topFamilies)
	for i, f := range families {
		if i == topFamilies {
			break
		}
		rep := f.Records[0]
		r, g, b := rep.Color.Bytes()
		fmt.Printf("  Family %d: ID prefix=%s, Colors=%d, Example: %s RGB=[%d, %d, %d]\n",
			i+1, f.Prefix, len(f.Records), rep.Name, r, g, b)
	}
}

func (p *processor) printDatabase() {
	lib, err := p.store.Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Println("\nFull color database:")
	for _, r := range lib.Records() {
		fmt.Printf("  %s: %s, ID=%s...\n", r.Name, strings.TrimPrefix(rgbText(r.Color), "RGB: "), clip(r.ID, 10))
	}
}
