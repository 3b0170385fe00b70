package seamcarve

import (
	"image"
	"image/color"

	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/utils"
)

// Seam holds the column index of the removable pixel for every image row.
// Column indices of adjacent rows differ by at most one.
type Seam []int

// Carver holds the energy and cumulative cost tables computed for one carving step.
type Carver struct {
	Width  int
	Height int
	Energy *Grid[uint32]
	Cost   *Grid[uint64]
}

// NewCarver returns an initialized Carver structure.
func NewCarver(width, height int) *Carver {
	return &Carver{
		Width:  width,
		Height: height,
	}
}

// ComputeSeams computes the energy map of the image and propagates
// the minimum cumulative energy from the bottom row upwards.
func (c *Carver) ComputeSeams(img *image.NRGBA) (*Grid[uint64], error) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if width != c.Width || height != c.Height {
		return nil, errors.Errorf("image size %dx%d does not match the carver size %dx%d",
			width, height, c.Width, c.Height)
	}
	if width < 1 || height < 1 {
		return nil, errors.Wrapf(ErrDegenerateGeometry, "cannot compute seams on a %dx%d image", width, height)
	}

	c.Energy = ComputeEnergy(img)
	c.Cost = ComputeCost(c.Energy)

	return c.Cost, nil
}

// ComputeCost builds the dynamic programming table of the energy map:
//   - the last row is the energy itself, since a one row path costs its own energy.
//   - traversing the rows upwards, every entry is the sum of its own energy and
//     the minimum of the (up to) three adjacent entries of the row below.
//
// Contrary to the energy map the first and last columns do not wrap around,
// a seam is not allowed to leave the image.
func ComputeCost(energy *Grid[uint32]) *Grid[uint64] {
	width, height := energy.Width, energy.Height
	cost := NewGrid[uint64](width, height)
	if width == 0 || height == 0 {
		return cost
	}

	last := height - 1
	for x := 0; x < width; x++ {
		cost.Set(x, last, uint64(energy.At(x, last)))
	}

	for y := last - 1; y >= 0; y-- {
		below := cost.Row(y + 1)
		for x := 0; x < width; x++ {
			least := below[x]
			if x > 0 {
				least = utils.Min(least, below[x-1])
			}
			if x < width-1 {
				least = utils.Min(least, below[x+1])
			}
			cost.Set(x, y, uint64(energy.At(x, y))+least)
		}
	}
	return cost
}

// FindSeam returns the lowest cost vertical seam of the cost table.
//
// The seam starts at the cheapest column of the first row (the leftmost one on ties)
// and walks downwards choosing, among the three adjacent columns of the next row,
// the one with the lowest cost. Since the cost of each entry already includes the
// cheapest path to the bottom row, this greedy walk yields the global minimum and
// no backtracking or parent pointers are needed.
//
// On ties the straight down move wins, then the move to the left.
func FindSeam(cost *Grid[uint64]) Seam {
	width, height := cost.Width, cost.Height
	if width == 0 || height == 0 {
		return nil
	}
	seam := make(Seam, height)

	first := cost.Row(0)
	px := 0
	for x := 1; x < width; x++ {
		if first[x] < first[px] {
			px = x
		}
	}
	seam[0] = px

	for y := 1; y < height; y++ {
		row := cost.Row(y)
		next := px
		if px > 0 && row[px-1] < row[next] {
			next = px - 1
		}
		if px < width-1 && row[px+1] < row[next] {
			next = px + 1
		}
		px = next
		seam[y] = px
	}
	return seam
}

// FindLowestEnergySeam returns the lowest energy vertical seam of the last computed cost table.
func (c *Carver) FindLowestEnergySeam() Seam {
	if c.Cost == nil {
		return nil
	}
	return FindSeam(c.Cost)
}

// RemoveSeam returns a new image, one pixel narrower than the source, without the seam pixels.
// The pixels left to the seam are copied as they are, the ones on its right are shifted
// to the left by one. The source image is not modified.
func (c *Carver) RemoveSeam(img *image.NRGBA, seam Seam) (*image.NRGBA, error) {
	if err := c.checkSeam(img, seam); err != nil {
		return nil, err
	}
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, width-1, height))

	for y := 0; y < height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+width*4]
		row := dst.Pix[y*dst.Stride : y*dst.Stride+(width-1)*4]

		px := seam[y] * 4
		copy(row[:px], src[:px])
		copy(row[px:], src[px+4:])
	}
	return dst, nil
}

// DrawSeam paints the seam pixels of img with the provided color.
// It modifies img in place, so it should be called on a copy of the image being carved.
func (c *Carver) DrawSeam(img *image.NRGBA, seam Seam, col color.Color) error {
	if err := c.checkSeam(img, seam); err != nil {
		return err
	}
	for y, x := range seam {
		img.Set(img.Rect.Min.X+x, img.Rect.Min.Y+y, col)
	}
	return nil
}

// checkSeam validates the seam against the image geometry.
func (c *Carver) checkSeam(img *image.NRGBA, seam Seam) error {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if len(seam) != height {
		return errors.Errorf("seam length %d does not match the image height %d", len(seam), height)
	}
	for y, x := range seam {
		if x < 0 || x >= width {
			return errors.Errorf("seam column %d out of range at row %d", x, y)
		}
		if y > 0 && utils.Abs(x-seam[y-1]) > 1 {
			return errors.Errorf("seam is not connected at row %d", y)
		}
	}
	return nil
}
