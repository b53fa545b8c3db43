// Package main provides the desktop viewer for a scivis color library.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2/app"

	"scivis/internal/config"
	"scivis/internal/logging"
	"scivis/internal/render"
	"scivis/internal/store"
	"scivis/internal/version"
	"scivis/ui/viewer"
)

const (
	appTitle      = "Scivis Colors"
	watchInterval = 2 * time.Second
)

func main() {
	configPath := flag.String("config", "", "Path to config file")
	watch := flag.Bool("watch", true, "Reload when the color library changes on disk")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String("scivis"))
		return
	}

	cfg, err := config.Load(config.Path(*configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel, os.Stderr)
	log.Info("starting", slog.String("app", appTitle), slog.String("version", version.Version))

	path := cfg.Store
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}
	st := store.New(path, store.WithLogger(log))

	swatches, err := loadSwatches(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load %s: %v\n", path, err)
		os.Exit(1)
	}
	log.Info("loaded colors", "path", path, "count", len(swatches))

	a := app.NewWithID(viewer.AppID)
	win := viewer.NewWindow(a, appTitle+" - "+path, swatches)

	if *watch {
		w := store.NewWatcher(path, watchInterval, func() {
			sw, err := loadSwatches(st)
			if err != nil {
				log.Warn("reload failed", "path", path, "err", err)
				return
			}
			log.Info("color library changed, reloading", "count", len(sw))
			viewer.Refresh(win, sw)
		})
		w.Start()
		defer w.Stop()
	}

	win.ShowAndRun()
}

func loadSwatches(st *store.Store) ([]render.Swatch, error) {
	lib, err := st.Load(store.LoadOptions{IncludeMeta: true, UseIDAsKey: true})
	if err != nil {
		return nil, err
	}
	swatches := make([]render.Swatch, 0, lib.Len())
	for _, r := range lib.Records() {
		swatches = append(swatches, render.Swatch{Color: r.Color, Label: render.Label(r.Name, r.Color, r.ID)})
	}
	return swatches, nil
}
