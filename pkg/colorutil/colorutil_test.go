package colorutil

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRGBToHSV(t *testing.T) {
	tests := []struct {
		name    string
		c       Color
		h, s, v float64
	}{
		{"black", Black, 0, 0, 0},
		{"white", White, 0, 0, 1},
		{"gray", RGB(0.5, 0.5, 0.5), 0, 0, 0.5},
		{"red", Red, 0, 1, 1},
		{"green", Green, 120, 1, 1},
		{"blue", Blue, 240, 1, 1},
		{"cyan", Cyan, 180, 1, 1},
		{"magenta", RGB(1, 0, 1), 300, 1, 1},
		{"rose", RGB(1, 0, 0.5), 330, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := RGBToHSV(tt.c)
			assert.InDelta(t, tt.h, h, 1e-9)
			assert.InDelta(t, tt.s, s, 1e-9)
			assert.InDelta(t, tt.v, v, 1e-9)
		})
	}
}

func TestHSVToRGBRoundTrip(t *testing.T) {
	for h := 0.0; h < 360; h += 30 {
		for _, s := range []float64{0.3, 0.7, 1} {
			for _, v := range []float64{0.3, 0.7, 1} {
				c := HSVToRGB(h, s, v)
				gh, gs, gv := RGBToHSV(c)
				assert.InDelta(t, h, gh, 1e-6, "hue for h=%v s=%v v=%v", h, s, v)
				assert.InDelta(t, s, gs, 1e-9)
				assert.InDelta(t, v, gv, 1e-9)
			}
		}
	}
}

func TestHueDistance(t *testing.T) {
	assert.Equal(t, 0.0, HueDistance(10, 10))
	assert.Equal(t, 180.0, HueDistance(0, 180))
	assert.Equal(t, 20.0, HueDistance(350, 10))
	assert.Equal(t, 20.0, HueDistance(10, 350))
	assert.Equal(t, 90.0, HueDistance(45, 315))
}

func TestEuclideanRGBDistance(t *testing.T) {
	assert.Equal(t, 0.0, EuclideanRGBDistance(Red, Red))
	assert.InDelta(t, math.Sqrt(3), EuclideanRGBDistance(Black, White), 1e-12)
	assert.InDelta(t, 0.1, EuclideanRGBDistance(Blue, RGB(0, 0, 0.9)), 1e-12)

	// Alpha is ignored.
	assert.Equal(t, 0.0, EuclideanRGBDistance(RGBA(1, 0, 0, 0.2), Red))
}

func TestSimilarityScore(t *testing.T) {
	assert.Equal(t, 1.0, SimilarityScore(0))
	assert.InDelta(t, 0.0, SimilarityScore(math.Sqrt(3)), 1e-12)
	assert.InDelta(t, 1-0.1/math.Sqrt(3), SimilarityScore(0.1), 1e-12)
}

func TestFromSlice(t *testing.T) {
	c, err := FromSlice([]float64{1, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, Red, c)

	c, err = FromSlice([]float64{0, 0, 1, 0.5})
	require.NoError(t, err)
	assert.True(t, c.HasAlpha)
	assert.Equal(t, 0.5, c.A)

	for _, bad := range [][]float64{
		nil,
		{1, 0},
		{1, 0, 0, 0, 0},
		{1.5, 0, 0},
		{0, -0.1, 0},
		{math.NaN(), 0, 0},
	} {
		_, err := FromSlice(bad)
		var ice *InvalidColorError
		assert.True(t, errors.As(err, &ice), "expected InvalidColorError for %v", bad)
	}
}

func TestColorJSON(t *testing.T) {
	data, err := json.Marshal(RGB(1, 0.5, 0))
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 0.5, 0]`, string(data))

	data, err = json.Marshal(RGBA(1, 0.5, 0, 0.25))
	require.NoError(t, err)
	assert.JSONEq(t, `[1, 0.5, 0, 0.25]`, string(data))

	var c Color
	require.NoError(t, json.Unmarshal([]byte(`[0.2, 0.4, 0.6]`), &c))
	assert.Equal(t, RGB(0.2, 0.4, 0.6), c)

	assert.Error(t, json.Unmarshal([]byte(`[0.2, 0.4]`), &c))
	assert.Error(t, json.Unmarshal([]byte(`"red"`), &c))
}

func TestHex(t *testing.T) {
	assert.Equal(t, "#ff0000", Red.Hex())
	assert.Equal(t, "#808080", RGB(0.5, 0.5, 0.5).Hex())

	c, err := ParseHex("#1f77b4")
	require.NoError(t, err)
	assert.Equal(t, "#1f77b4", c.Hex())

	_, err = ParseHex("not-a-color")
	assert.Error(t, err)
}

func TestFloorMod(t *testing.T) {
	assert.Equal(t, 5.0, FloorMod(-1, 6))
	assert.Equal(t, 1.0, FloorMod(7, 6))
	assert.Equal(t, 0.0, FloorMod(0, 6))
}
