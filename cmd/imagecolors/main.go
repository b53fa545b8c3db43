// Command imagecolors extracts dominant colors from images into the color
// library and renders matching colors for the most dominant one.
package main

import (
	"flag"
	"fmt"
	"os"

	"scivis/internal/config"
	"scivis/internal/extract"
	"scivis/internal/logging"
	"scivis/internal/store"
	"scivis/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	numColors := flag.Int("n", 0, "Number of colors to extract from each image (default from config)")
	show := flag.Bool("show", false, "Show the extracted colors of each image in a window")
	output := flag.String("output", "", "Color library file (default from config)")
	verbose := flag.Bool("verbose", false, "Print the colors stored for each image")
	convert := flag.Bool("convert", false, "Convert the color library to the ID-keyed format first")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("imagecolors"))
		return
	}
	if flag.NArg() != 1 {
		fmt.Println("Usage: imagecolors [-n 5] [-show] [-output colors.json] [-verbose] [-convert] <image-or-directory>")
		os.Exit(1)
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	if *output != "" {
		cfg.Store = *output
	}
	if *numColors > 0 {
		cfg.Extract.NumColors = *numColors
	}

	if *convert {
		if _, err := os.Stat(cfg.Store); err == nil {
			backup, n, err := store.Upgrade(cfg.Store, store.WithLogger(log))
			switch {
			case err != nil:
				fmt.Printf("Error converting file: %v\n", err)
			case backup == "":
				fmt.Printf("%s is already ID-keyed\n", cfg.Store)
			default:
				fmt.Printf("Backup created: %s\n", backup)
				fmt.Printf("Converted %d colors to ID-based format\n", n)
			}
		}
	}

	p := &processor{
		cfg:     cfg,
		store:   store.New(cfg.Store, store.WithLogger(log)),
		ext:     cfg.ApplyExtract(extract.New(log)),
		show:    *show,
		verbose: *verbose,
	}

	path := flag.Arg(0)
	info, err := os.Stat(path)
	if err != nil {
		fmt.Printf("Error: Path not found: %s\n", path)
		os.Exit(1)
	}

	if info.IsDir() {
		if err := p.processDirectory(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		if !extract.IsImageFile(path) {
			fmt.Printf("Error: Not an image file: %s\n", path)
			os.Exit(1)
		}
		if _, err := p.processImage(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if p.verbose {
			p.printDatabase()
		}
	}
	fmt.Println("Done!")
}
