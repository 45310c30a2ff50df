// Package imageio converts between images and grid.Grid.
//
// Images are reduced to grayscale and normalized to [0,1]; the grid's
// sentinel (−1 by default) lies outside that range. Decoding and encoding
// go through github.com/disintegration/imaging, so every format it handles
// (PNG, JPEG, GIF, TIFF, BMP) works, chosen by file extension on Save.
package imageio

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/disintegration/imaging"

	"github.com/katalvlaran/holefill/grid"
)

// Load opens and decodes the image at path (EXIF orientation applied) and
// returns its normalized grayscale grid.
func Load(path string) (*grid.Grid, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("imageio: open %q: %w", path, err)
	}
	return FromImage(img)
}

// Decode reads an image from r and returns its normalized grayscale grid.
func Decode(r io.Reader) (*grid.Grid, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imageio: decode: %w", err)
	}
	return FromImage(img)
}

// FromImage converts img to a grid of grayscale samples in [0,1].
// Row x of the grid is image row x (top first); column y is image column y.
// Complexity: O(width×height).
func FromImage(img image.Image) (*grid.Grid, error) {
	gray := imaging.Grayscale(img)
	b := gray.Bounds()
	g, err := grid.New(b.Dy(), b.Dx())
	if err != nil {
		return nil, fmt.Errorf("imageio: %w", err)
	}
	for x := 0; x < b.Dy(); x++ {
		row := gray.Pix[x*gray.Stride:]
		for y := 0; y < b.Dx(); y++ {
			// R == G == B after Grayscale.
			_ = g.Set(grid.Coord{X: x, Y: y}, float64(row[y*4])/255)
		}
	}
	return g, nil
}

// ToImage renders g as an 8-bit grayscale image. Samples are clamped to
// [0,1]; missing cells render black.
// Complexity: O(rows×cols).
func ToImage(g *grid.Grid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.Cols(), g.Rows()))
	for x := 0; x < g.Rows(); x++ {
		for y := 0; y < g.Cols(); y++ {
			c := grid.Coord{X: x, Y: y}
			if g.IsMissing(c) {
				continue
			}
			v, _ := g.At(c)
			img.Pix[x*img.Stride+y] = uint8(math.Round(clamp01(v) * 255))
		}
	}
	return img
}

// Save encodes g to path; the format follows the file extension.
func Save(path string, g *grid.Grid) error {
	if err := imaging.Save(ToImage(g), path); err != nil {
		return fmt.Errorf("imageio: save %q: %w", path, err)
	}
	return nil
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
