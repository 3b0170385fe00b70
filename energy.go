package seamcarve

import (
	"image"
	"math"

	"github.com/seamcarve/seamcarve/utils"
)

// ComputeEnergy returns the energy map of the image: for every pixel the
// truncated magnitude of the color difference between its left and right
// neighbors and between its up and down neighbors.
//
// Neighbor lookups wrap around the image edges (the image is treated as a torus),
// so border pixels get a defined energy without special casing.
func ComputeEnergy(img *image.NRGBA) *Grid[uint32] {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	energy := NewGrid[uint32](width, height)

	for y := 0; y < height; y++ {
		up := utils.Wrap(y-1, height)
		down := utils.Wrap(y+1, height)

		for x := 0; x < width; x++ {
			left := utils.Wrap(x-1, width)
			right := utils.Wrap(x+1, width)

			dx := colorDistance(img, left, y, right, y)
			dy := colorDistance(img, x, up, x, down)

			energy.Set(x, y, uint32(math.Sqrt(float64(dx+dy))))
		}
	}
	return energy
}

// colorDistance returns the squared euclidean distance between
// the RGB components of the pixels (x0, y0) and (x1, y1).
// Coordinates are relative to the image origin.
func colorDistance(img *image.NRGBA, x0, y0, x1, y1 int) int {
	i := y0*img.Stride + x0*4
	j := y1*img.Stride + x1*4

	var sum int
	for c := 0; c < 3; c++ {
		d := int(img.Pix[i+c]) - int(img.Pix[j+c])
		sum += d * d
	}
	return sum
}
