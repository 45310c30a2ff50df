package imageio

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/gift"
	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"

	"github.com/katalvlaran/holefill/grid"
)

// ErrMaskSize indicates a mask whose dimensions differ from the grid.
var ErrMaskSize = errors.New("imageio: mask size does not match grid")

// MaskOptions controls how a mask image is turned into missing cells.
type MaskOptions struct {
	// Threshold: cells whose mask luminance in [0,1] is below it become missing.
	Threshold float64
	// Blur is the Gaussian sigma applied before thresholding; 0 disables it.
	Blur float32
	// Fit rescales a mask of another size to the grid (nearest neighbor)
	// instead of failing with ErrMaskSize.
	Fit bool
}

// ApplyMask marks as missing every cell whose mask luminance (in [0,1]) is
// below threshold, so black regions of the mask become holes. The mask must
// have the grid's dimensions. Returns the number of cells marked.
// Complexity: O(rows×cols).
func ApplyMask(g *grid.Grid, mask image.Image, threshold float64) (int, error) {
	return ApplyMaskWith(g, mask, MaskOptions{Threshold: threshold})
}

// ApplyMaskWith is ApplyMask with blur and fitting. A fitted mask is resized
// before it is blurred.
func ApplyMaskWith(g *grid.Grid, mask image.Image, opts MaskOptions) (int, error) {
	b := mask.Bounds()
	if b.Dy() != g.Rows() || b.Dx() != g.Cols() {
		if !opts.Fit {
			return 0, fmt.Errorf("%w: mask %dx%d, grid %dx%d", ErrMaskSize, b.Dx(), b.Dy(), g.Cols(), g.Rows())
		}
		mask = resize.Resize(uint(g.Cols()), uint(g.Rows()), mask, resize.NearestNeighbor)
	}

	gray := maskLuminance(mask, opts.Blur)
	n := 0
	for x := 0; x < g.Rows(); x++ {
		row := gray.Pix[x*gray.Stride:]
		for y := 0; y < g.Cols(); y++ {
			if float64(row[y])/255 < opts.Threshold {
				_ = g.MarkMissing(grid.Coord{X: x, Y: y})
				n++
			}
		}
	}
	return n, nil
}

// LoadMask opens the mask image at path and applies it to g.
func LoadMask(g *grid.Grid, path string, opts MaskOptions) (int, error) {
	mask, err := imaging.Open(path)
	if err != nil {
		return 0, fmt.Errorf("imageio: open mask %q: %w", path, err)
	}
	return ApplyMaskWith(g, mask, opts)
}

// maskLuminance renders mask as an 8-bit gray image with origin (0,0),
// blurred when sigma > 0.
func maskLuminance(mask image.Image, sigma float32) *image.Gray {
	filters := []gift.Filter{gift.Grayscale()}
	if sigma > 0 {
		filters = append(filters, gift.GaussianBlur(sigma))
	}
	f := gift.New(filters...)
	dst := image.NewGray(f.Bounds(mask.Bounds()))
	f.Draw(dst, mask)
	return dst
}
