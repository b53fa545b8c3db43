// Command colorpalette picks a palette out of the color library and renders it.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"scivis/internal/config"
	"scivis/internal/logging"
	"scivis/internal/naming"
	"scivis/internal/palette"
	"scivis/internal/render"
	"scivis/internal/store"
	"scivis/internal/version"
	"scivis/pkg/colorutil"
	"scivis/ui/viewer"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	storePath := flag.String("store", "", "Color library file (default from config)")
	family := flag.String("family", "", "Color family, e.g. red, blue, ocean")
	num := flag.Int("num", 0, "Number of colors in the palette (default from config)")
	kindName := flag.String("type", "", "Palette type: "+kindList())
	output := flag.String("output", "", "Output PNG (default <output_dir>/palette_<type>_<family>.png)")
	show := flag.Bool("show", false, "Show the palette in a window")
	list := flag.Bool("list", false, "List basic colors and library families")
	examples := flag.Bool("examples", false, "Also render usage examples")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("colorpalette"))
		return
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
	if *num == 0 {
		*num = cfg.Palette.Num
	}
	if *kindName == "" {
		*kindName = cfg.Palette.Type
	}

	st := store.New(*storePath, store.WithLogger(log))
	lib, err := st.Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *list {
		printAvailable(lib)
		return
	}

	kind, err := palette.ParseKind(*kindName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	selected, title := palette.NewGenerator(log).Generate(lib.Records(), *family, *num, kind)
	if len(selected) == 0 {
		fmt.Println("Warning: no colors to show")
		os.Exit(1)
	}

	sheet := render.NewSheet(title)
	var colors []colorutil.Color
	for _, r := range selected {
		sheet.Swatch(r.Color, render.Label(r.Name, r.Color, r.ID))
		colors = append(colors, r.Color)
	}

	outPath := *output
	if outPath == "" {
		tag := *family
		if tag == "" {
			tag = "all"
		}
		outPath = filepath.Join(cfg.OutputDir, fmt.Sprintf("palette_%s_%s.png", kind, tag))
	} else if !strings.EqualFold(filepath.Ext(outPath), ".png") {
		outPath += ".png"
	}

	if err := sheet.SavePNG(outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Palette saved to: %s\n", outPath)

	if *examples && len(colors) >= 2 {
		exPath := strings.TrimSuffix(outPath, filepath.Ext(outPath)) + "_examples.png"
		if err := render.SaveExamples(colors, exPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Usage examples saved to: %s\n", exPath)
	}

	if *show {
		viewer.Show(title, sheet.Swatches())
	}
}

func kindList() string {
	var names []string
	for _, k := range palette.Kinds() {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintln(out, "colorpalette - build a palette from the color library")
	fmt.Fprintln(out, "\nPalette types:")
	for _, k := range palette.Kinds() {
		fmt.Fprintf(out, "  %-20s %s\n", k, k.Description())
	}
	fmt.Fprintln(out, "\nExamples:")
	fmt.Fprintln(out, "  colorpalette -type triadic -num 3")
	fmt.Fprintln(out, "  colorpalette -family blue -type monochromatic -num 5")
	fmt.Fprintln(out, "  colorpalette -type tetradic -examples -show")
	fmt.Fprintln(out, "\nFlags:")
	flag.PrintDefaults()
}

func printAvailable(lib *store.Collection) {
	basics := naming.BasicColors()
	sort.SliceStable(basics, func(i, j int) bool { return basics[i].Name < basics[j].Name })

	fmt.Println("\n=== Basic colors ===")
	isBasic := make(map[string]bool, len(basics))
	for _, b := range basics {
		isBasic[b.Name] = true
		r, g, bl := b.Color.Bytes()
		fmt.Printf("%-15s: RGB=[%d, %d, %d]\n", b.Name, r, g, bl)
	}

	families := make(map[string]int)
	for _, r := range lib.Records() {
		base, _, _ := strings.Cut(r.Name, "_")
		families[base]++
	}
	var extra []string
	for name := range families {
		if !isBasic[name] {
			extra = append(extra, name)
		}
	}
	if len(extra) > 0 {
		sort.Strings(extra)
		fmt.Println("\n=== Other families in the library ===")
		for _, name := range extra {
			fmt.Printf("%s: %d variants\n", name, families[name])
		}
	}

	fmt.Println("\nExamples:")
	fmt.Println("  colorpalette -family blue -type brightness -num 6")
	fmt.Println("  colorpalette -type complementary -num 8")
	fmt.Println("  colorpalette -family red -output my_red_palette.png")
}
