// Command showcolors renders every color in the library as a grid.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scivis/internal/config"
	"scivis/internal/logging"
	"scivis/internal/render"
	"scivis/internal/store"
	"scivis/internal/version"
	"scivis/ui/viewer"
)

const maxColumns = 8

func main() {
	configPath := flag.String("config", "", "Path to config file")
	storePath := flag.String("store", "", "Color library file (default from config)")
	output := flag.String("output", "", "Output PNG (default <output_dir>/all_colors_<sort>.png)")
	sortBy := flag.String("sort", "hue", "Sort order: "+strings.Join(sortKeys, ", "))
	show := flag.Bool("show", false, "Show the colors in a window")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("showcolors"))
		return
	}
	if !validSort(*sortBy) {
		fmt.Fprintf(os.Stderr, "Error: unknown sort order %q\n", *sortBy)
		os.Exit(1)
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	if *storePath == "" {
		*storePath = cfg.Store
	}

	lib, err := store.New(*storePath, store.WithLogger(log)).Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	recs := lib.Records()
	if len(recs) == 0 {
		fmt.Println("Using the default color library")
		recs = store.DefaultRecords()
	}
	fmt.Printf("Loaded %d colors\n", len(recs))

	sortRecords(recs, *sortBy)
	title := fmt.Sprintf("All colors in the library (by %s)", *sortBy)

	sheet := render.NewSheet(title)
	sheet.Columns = len(recs)
	if sheet.Columns > maxColumns {
		sheet.Columns = maxColumns
	}
	sheet.Width = sheet.Columns * 200
	sheet.RowHeight = 100
	for _, r := range recs {
		sheet.Swatch(r.Color, cellLabel(r))
	}

	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(cfg.OutputDir, fmt.Sprintf("all_colors_%s.png", *sortBy))
	} else if !strings.EqualFold(filepath.Ext(outPath), ".png") {
		outPath += ".png"
	}
	if err := sheet.SavePNG(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Color image saved to: %s\n", outPath)

	if *show {
		viewer.Show(title, sheet.Swatches())
	}
}
