package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scivis/internal/config"
	"scivis/internal/extract"
	"scivis/internal/query"
	"scivis/internal/store"
	"scivis/pkg/colorutil"
)

func TestOutputDirFor(t *testing.T) {
	assert.Equal(t, filepath.Join("outputs", "photos", "trip"), outputDirFor("outputs", filepath.Join("photos", "trip", "a.png")))
	assert.Equal(t, "outputs", outputDirFor("outputs", "a.png"))
	assert.Equal(t, "outputs", outputDirFor("outputs", "/somewhere/else/a.png"))
}

func TestEncodeSummaryKeepsOrder(t *testing.T) {
	results := map[string]*imageResult{
		"b.png": {ids: []string{"ff0000000000", "0000ff000000"}, names: map[string]string{"ff0000000000": "red_b", "0000ff000000": "blue_b"}},
		"a.png": {ids: []string{"00ff00000000"}, names: map[string]string{"00ff00000000": "green_a"}},
	}
	got, err := encodeSummary([]string{"b.png", "a.png"}, results)
	require.NoError(t, err)
	want := `{
  "b.png": {
    "ff0000000000": "red_b",
    "0000ff000000": "blue_b"
  },
  "a.png": {
    "00ff00000000": "green_a"
  }
}
`
	assert.Equal(t, want, string(got))
}

func TestMatchSheetLabels(t *testing.T) {
	s := matchSheet("Similar", colorutil.Red, "ff000000ffff", []query.Match{
		{Name: "rose", Color: colorutil.RGB(1, 0, 0.5), Score: 0.925, ID: "ff007fe8ffff"},
	}, "Similarity")
	sw := s.Swatches()
	require.Len(t, sw, 2)
	assert.Equal(t, "Reference\nRGB: [255, 0, 0]\nID: ff000000ffff", sw[0].Label)
	assert.Equal(t, "rose\nRGB: [255, 0, 127]\nID: ff007f...\nSimilarity: 92.5%", sw[1].Label)
}

func TestProcessImage(t *testing.T) {
	dir := t.TempDir()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: 255, A: 255})
		}
	}
	imgPath := filepath.Join(dir, "sunset.png")
	f, err := os.Create(imgPath)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	cfg := config.Default()
	cfg.OutputDir = filepath.Join(dir, "out")
	cfg.Store = filepath.Join(dir, "out", "colors.json")
	p := &processor{
		cfg:   cfg,
		store: store.New(cfg.Store),
		ext:   cfg.ApplyExtract(extract.New(nil)),
	}

	res, err := p.processImage(imgPath)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.ids, 1)
	assert.Equal(t, "vivid_red_from_sunset", res.names[res.ids[0]])

	out := outputDirFor(cfg.OutputDir, imgPath)
	for _, suffix := range []string{"_colors", "_similar", "_complementary", "_brightness"} {
		assert.FileExists(t, filepath.Join(out, "sunset"+suffix+".png"))
	}
}
