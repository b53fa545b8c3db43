// Command colornaming generates descriptive color names: it writes a sample
// spectrum, renames an existing library and names colors taken from an image.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"scivis/internal/config"
	"scivis/internal/extract"
	"scivis/internal/logging"
	"scivis/internal/naming"
	"scivis/internal/render"
	"scivis/internal/store"
	"scivis/internal/version"
	"scivis/pkg/colorutil"
)

const (
	namedFile   = "named_colors.json"
	renamedFile = "renamed_colors.json"
	gridSubset  = 20
	imageColors = 10
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	rename := flag.String("rename", "", "Color file to rename with descriptive names")
	imagePath := flag.String("image", "", "Image to extract named colors from")
	convert := flag.String("convert", "", "Color file to convert to the ID-keyed format")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("colornaming"))
		return
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	out := cfg.OutputDir

	if *convert != "" {
		fmt.Printf("Converting color file format: %s\n", *convert)
		dst, n, err := store.Convert(*convert, store.WithLogger(log))
		if err != nil {
			fmt.Printf("Error converting file: %v\n", err)
		} else {
			fmt.Printf("Converted %d colors to ID-based format\n", n)
			fmt.Printf("Saved to: %s\n", dst)
		}
	}

	fmt.Println("Creating sample colors...")
	samples := store.NewCollection(store.KeyByID)
	for _, s := range naming.SampleSpectrum() {
		samples.Put(store.NewRecord(s.Name, s.Color))
	}
	named := store.New(filepath.Join(out, namedFile), store.WithLogger(log))
	if err := named.Save(samples, true); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved %d sample colors to %s\n", samples.Len(), named.Path())
	saveGrid(head(samples.Records(), gridSubset), "Sample named colors", 4, filepath.Join(out, "sample_colors.png"))

	if *rename != "" {
		fmt.Printf("Renaming colors in %s...\n", *rename)
		if err := renameFile(*rename, out, log); err != nil {
			fmt.Printf("Error renaming colors: %v\n", err)
		}
	}

	if *imagePath != "" {
		if _, err := os.Stat(*imagePath); err != nil {
			fmt.Printf("Image not found: %s\n", *imagePath)
		} else {
			fmt.Printf("\nExtracting colors from %s...\n", *imagePath)
			ext := cfg.ApplyExtract(extract.New(log))
			added, ids, err := ext.AddFromImage(*imagePath, named, imageColors, "")
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			lib, err := named.Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			var extracted []store.Record
			for _, id := range ids {
				if r, ok := lib.Get(id); ok {
					extracted = append(extracted, r)
				}
			}
			fmt.Printf("Extracted %d colors with descriptive names:\n", len(added))
			for _, r := range extracted {
				fmt.Printf("  ID: %s... -> %-30s - %s\n", clip(r.ID, 10), r.Name, rgbText(r.Color))
			}
			base := filepath.Base(*imagePath)
			stem := strings.TrimSuffix(base, filepath.Ext(base))
			saveGrid(extracted, "Colors from "+base, 3, filepath.Join(out, stem+"_named_colors.png"))
		}
	}
}

func renameFile(path, out string, log *slog.Logger) error {
	if _, err := os.Stat(path); err != nil {
		fmt.Printf("Color file not found: %s\n", path)
		return nil
	}
	src := store.New(path, store.WithStrict(true), store.WithLogger(log))
	orig, err := src.Load(store.LoadOptions{IncludeMeta: true})
	if err != nil {
		return err
	}

	taken := make(map[string]bool)
	renamed := store.NewCollection(store.KeyByID)
	for _, r := range orig.Records() {
		renamed.Put(store.Record{ID: r.ID, Color: r.Color, Name: naming.Rename(r.Name, r.Color, taken)})
	}
	dst := store.New(filepath.Join(out, renamedFile), store.WithLogger(log))
	if err := dst.Save(renamed, true); err != nil {
		return err
	}
	fmt.Printf("Renamed %d colors\n", renamed.Len())
	saveGrid(head(renamed.Records(), gridSubset), "Renamed colors", 4, filepath.Join(out, "renamed_colors.png"))

	fmt.Println("\nSample of renamed colors:")
	for i, r := range head(orig.Records(), 10) {
		nr, ok := renamed.Get(r.ID)
		if !ok {
			continue
		}
		fmt.Printf("  %d. %-30s -> %-30s (%s)\n", i+1, r.Name, nr.Name, rgbText(r.Color))
	}
	return nil
}

func head(recs []store.Record, n int) []store.Record {
	if len(recs) > n {
		return recs[:n]
	}
	return recs
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

// gridLabel splits long names after their second part.
func gridLabel(r store.Record) string {
	name := r.Name
	if parts := strings.Split(name, "_"); len(parts) > 2 {
		name = strings.Join(parts[:2], "_") + "\n" + strings.Join(parts[2:], "_")
	}
	h, s, v := colorutil.RGBToHSV(r.Color)
	return fmt.Sprintf("%s\nH:%.0f° S:%.2f V:%.2f\n%s\nID: %s...", name, h, s, v, rgbText(r.Color), clip(r.ID, 6))
}

func saveGrid(recs []store.Record, title string, cols int, path string) {
	if len(recs) == 0 {
		return
	}
	sheet := render.NewSheet(title)
	sheet.Columns = cols
	sheet.Width = cols * 240
	sheet.RowHeight = 110
	for _, r := range recs {
		sheet.Swatch(r.Color, gridLabel(r))
	}
	if err := sheet.SavePNG(path); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return
	}
	fmt.Printf("Saved %s\n", path)
}
