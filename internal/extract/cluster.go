package extract

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"gocv.io/x/gocv"

	"scivis/pkg/colorutil"
)

// PaletteMaxDimension bounds the image before clustering.
const PaletteMaxDimension = 200

// maxBrightness is the perceived brightness, on a 0-255 scale, at or above
// which a pixel counts as white for clustering.
const maxBrightness = 240

// ErrTooFewPixels is returned when fewer usable pixels than requested
// colors remain.
var ErrTooFewPixels = errors.New("not enough non-white pixels to extract the requested colors")

// Clusterer groups points into k centers. Points and centers use 0-255
// channel values.
type Clusterer interface {
	Cluster(points [][3]float64, k int) ([][3]float64, error)
}

// KMeans clusters with OpenCV k-means using random initial centers.
type KMeans struct {
	Attempts int
	MaxIter  int
	Epsilon  float64
}

// DefaultKMeans returns a KMeans with ten attempts.
func DefaultKMeans() KMeans {
	return KMeans{Attempts: 10, MaxIter: 100, Epsilon: 0.2}
}

// Cluster implements Clusterer.
func (km KMeans) Cluster(points [][3]float64, k int) ([][3]float64, error) {
	if k <= 0 {
		return nil, fmt.Errorf("invalid cluster count %d", k)
	}
	if len(points) < k {
		return nil, ErrTooFewPixels
	}

	data := gocv.NewMatWithSize(len(points), 3, gocv.MatTypeCV32F)
	defer data.Close()
	for i, p := range points {
		data.SetFloatAt(i, 0, float32(p[0]))
		data.SetFloatAt(i, 1, float32(p[1]))
		data.SetFloatAt(i, 2, float32(p[2]))
	}

	labels := gocv.NewMat()
	defer labels.Close()
	centers := gocv.NewMat()
	defer centers.Close()

	attempts := km.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	criteria := gocv.NewTermCriteria(gocv.EPS+gocv.MaxIter, km.MaxIter, km.Epsilon)
	gocv.KMeans(data, k, &labels, criteria, attempts, gocv.KMeansRandomCenters, &centers)

	if centers.Rows() != k {
		return nil, fmt.Errorf("k-means returned %d centers, want %d", centers.Rows(), k)
	}
	out := make([][3]float64, k)
	for i := range out {
		out[i] = [3]float64{
			float64(centers.GetFloatAt(i, 0)),
			float64(centers.GetFloatAt(i, 1)),
			float64(centers.GetFloatAt(i, 2)),
		}
	}
	return out, nil
}

// ExtractPalette clusters the pixels of img into k colors. Near-white
// pixels are dropped first when excludeWhite is set. Center channels are
// truncated to whole 0-255 values.
func ExtractPalette(img image.Image, k int, excludeWhite bool, cl Clusterer) ([]colorutil.Color, error) {
	img = Fit(img, PaletteMaxDimension)
	points := pixelPoints(img, excludeWhite)
	if len(points) < k {
		return nil, ErrTooFewPixels
	}

	centers, err := cl.Cluster(points, k)
	if err != nil {
		return nil, fmt.Errorf("clustering failed: %w", err)
	}
	out := make([]colorutil.Color, 0, len(centers))
	for _, c := range centers {
		out = append(out, colorutil.RGB(
			truncByte(c[0])/255,
			truncByte(c[1])/255,
			truncByte(c[2])/255,
		))
	}
	return out, nil
}

// ReadPalette decodes path and runs ExtractPalette on it.
func (e *Extractor) ReadPalette(path string, k int, excludeWhite bool, cl Clusterer) ([]colorutil.Color, error) {
	img, err := e.paletteDecoder().Decode(path)
	if err != nil {
		return nil, err
	}
	return ExtractPalette(img, k, excludeWhite, cl)
}

// paletteDecoder decodes at full size so ExtractPalette resamples once.
func (e *Extractor) paletteDecoder() Decoder {
	dec := e.decoder()
	if fd, ok := dec.(FileDecoder); ok {
		fd.MaxDimension = 0
		return fd
	}
	return dec
}

func pixelPoints(img image.Image, excludeWhite bool) [][3]float64 {
	b := img.Bounds()
	points := make([][3]float64, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			n := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			p := [3]float64{float64(n.R), float64(n.G), float64(n.B)}
			if excludeWhite && perceivedBrightness(p) >= maxBrightness {
				continue
			}
			points = append(points, p)
		}
	}
	return points
}

func perceivedBrightness(p [3]float64) float64 {
	return math.Sqrt(0.299*p[0]*p[0] + 0.587*p[1]*p[1] + 0.114*p[2]*p[2])
}

func truncByte(v float64) float64 {
	t := math.Trunc(v)
	if t < 0 {
		return 0
	}
	if t > 255 {
		return 255
	}
	return t
}
