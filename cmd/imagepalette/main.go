// Command imagepalette clusters an image into a palette, or previews the
// built-in named palettes and gradients.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"scivis/internal/config"
	"scivis/internal/extract"
	"scivis/internal/logging"
	"scivis/internal/palette"
	"scivis/internal/render"
	"scivis/internal/version"
	"scivis/pkg/colorutil"
	"scivis/ui/viewer"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	imagePath := flag.String("image", "", "Image to cluster into a palette")
	name := flag.String("name", "image_palette", "Name to register the image palette under")
	num := flag.Int("n", 5, "Number of colors")
	includeWhite := flag.Bool("include-white", false, "Keep near-white pixels when clustering")
	paletteName := flag.String("palette", "", "Preview a named palette instead")
	gradientName := flag.String("gradient", "", "Preview a named gradient instead")
	list := flag.Bool("list", false, "List named palettes and gradients")
	output := flag.String("output", "", "Output PNG (default <output_dir>/<name>.png)")
	examples := flag.Bool("examples", false, "Also render usage examples")
	show := flag.Bool("show", false, "Show the palette in a window")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("imagepalette"))
		return
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	m := palette.NewManager()

	if *list {
		fmt.Println("Palettes:  " + strings.Join(m.PaletteNames(), ", "))
		fmt.Println("Gradients: " + strings.Join(m.GradientNames(), ", "))
		return
	}

	var (
		colors []colorutil.Color
		title  string
		tag    string
	)
	switch {
	case *paletteName != "":
		colors, err = m.Palette(*paletteName, *num)
		title, tag = "Palette: "+*paletteName, "palette_"+*paletteName
	case *gradientName != "":
		colors, err = m.Gradient(*gradientName, *num)
		title, tag = "Gradient: "+*gradientName, "gradient_"+*gradientName
	case *imagePath != "":
		ext := cfg.ApplyExtract(extract.New(log))
		colors, err = ext.ReadPalette(*imagePath, *num, !*includeWhite, extract.DefaultKMeans())
		if err == nil {
			m.AddImagePalette(*name, colors)
			colors, _ = m.ImagePalette(*name)
		}
		title, tag = "Colors extracted from "+filepath.Base(*imagePath), *name
	default:
		fmt.Println("Usage: imagepalette -image <path> [-n 5] | -palette <name> | -gradient <name> | -list")
		os.Exit(1)
	}
	if errors.Is(err, palette.ErrUnknown) {
		fmt.Fprintf(os.Stderr, "Error: %v (see -list)\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	sheet := render.NewSheet(title)
	sheet.Columns = len(colors)
	sheet.Width = 160 * len(colors)
	for _, c := range colors {
		sheet.Swatch(c, c.Hex())
	}

	outPath := *output
	if outPath == "" {
		outPath = filepath.Join(cfg.OutputDir, tag+".png")
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
