// Package viewer shows color swatches in a desktop window.
package viewer

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"scivis/internal/render"
)

const (
	cellWidth  = 260
	cellHeight = 90
	textSize   = 12
)

// Columns picks a grid width for n swatches.
func Columns(n int) int {
	switch {
	case n <= 1:
		return 1
	case n <= 6:
		return 2
	case n <= 24:
		return 3
	default:
		return 4
	}
}

// Cell builds one swatch: a filled rectangle under its centered label lines.
func Cell(sw render.Swatch) fyne.CanvasObject {
	rect := canvas.NewRectangle(sw.Color.NRGBA())
	rect.SetMinSize(fyne.NewSize(cellWidth, cellHeight))

	if sw.Label == "" {
		return rect
	}
	tc := render.TextColor(sw.Color).NRGBA()
	var lines []fyne.CanvasObject
	for _, line := range strings.Split(sw.Label, "\n") {
		txt := canvas.NewText(line, tc)
		txt.TextSize = textSize
		txt.Alignment = fyne.TextAlignCenter
		lines = append(lines, txt)
	}
	return container.NewStack(rect, container.NewCenter(container.NewVBox(lines...)))
}

// Content lays the swatches out in a scrolling grid.
func Content(swatches []render.Swatch) fyne.CanvasObject {
	cells := make([]fyne.CanvasObject, len(swatches))
	for i, sw := range swatches {
		cells[i] = Cell(sw)
	}
	grid := container.NewGridWithColumns(Columns(len(swatches)), cells...)
	return container.NewVScroll(grid)
}

// NewWindow creates a window on a showing the swatches.
func NewWindow(a fyne.App, title string, swatches []render.Swatch) fyne.Window {
	a.Settings().SetTheme(NewTheme(swatches))
	win := a.NewWindow(title)
	win.SetContent(Content(swatches))

	cols := Columns(len(swatches))
	rows := (len(swatches) + cols - 1) / cols
	if rows > 6 {
		rows = 6
	}
	if rows < 1 {
		rows = 1
	}
	win.Resize(fyne.NewSize(float32(cols*cellWidth), float32(rows*cellHeight)))
	return win
}

// AppID identifies the viewer to fyne preferences and storage.
const AppID = "org.scivis.viewer"

// Refresh replaces the window content with swatches.
func Refresh(win fyne.Window, swatches []render.Swatch) {
	win.SetContent(Content(swatches))
}

// Show opens a window with the swatches and blocks until it is closed.
func Show(title string, swatches []render.Swatch) {
	a := app.NewWithID(AppID)
	NewWindow(a, title, swatches).ShowAndRun()
}
