package seamcarve

import (
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/utils"
)

// DefaultSeamColor is the color used to highlight the seams on the preview frames.
const DefaultSeamColor = "#ff0000"

// SeamCarver is the interface implemented by the content aware resizer.
// It takes an image and returns the carved one.
type SeamCarver interface {
	Carve(*image.NRGBA) (*image.NRGBA, error)
}

var _ SeamCarver = (*Processor)(nil)

// Processor options
type Processor struct {
	NewWidth  int
	NewHeight int
	// SeamColor is the hex color of the seams drawn on the preview frames.
	SeamColor string
	// Preview receives a frame with the seam highlighted before each seam removal.
	// It may be nil.
	Preview Previewer
}

// carveState is the stage of the carving process.
type carveState int

const (
	computingWidth carveState = iota
	computingHeight
	done
)

func (s carveState) String() string {
	switch s {
	case computingWidth:
		return "computing width"
	case computingHeight:
		return "computing height"
	default:
		return "done"
	}
}

// Validate checks the requested dimensions against the source image dimensions.
// The whole operation is rejected, no partial carving is ever done.
func (p *Processor) Validate(width, height int) error {
	if p.NewWidth >= width || p.NewHeight > height {
		return errors.Wrapf(ErrInvalidTargetDimensions,
			"requested %dx%d, image is %dx%d", p.NewWidth, p.NewHeight, width, height)
	}
	if p.NewWidth < 2 || p.NewHeight < 2 {
		return errors.Wrapf(ErrDegenerateGeometry, "requested %dx%d", p.NewWidth, p.NewHeight)
	}
	return nil
}

// Carve is the main entry point for the image resize operation.
// It removes the lowest energy vertical seams until the image width reaches NewWidth,
// then removes horizontal seams until the image height reaches NewHeight.
// Horizontal seams are found by running the vertical seam carver on the transposed image.
//
// The source image is left untouched.
func (p *Processor) Carve(img *image.NRGBA) (*image.NRGBA, error) {
	width, height := img.Bounds().Dx(), img.Bounds().Dy()
	if err := p.Validate(width, height); err != nil {
		return nil, err
	}

	seamColor := DefaultSeamColor
	if p.SeamColor != "" {
		seamColor = p.SeamColor
	}
	col, err := utils.HexToRGBA(seamColor)
	if err != nil {
		return nil, err
	}

	img = imgToNRGBA(img)

	// Validate guarantees at least one vertical seam to remove.
	state := computingWidth
	for state != done {
		switch state {
		case computingWidth:
			if img.Bounds().Dx() <= p.NewWidth {
				state = computingHeight
				continue
			}
			img, err = p.shrink(img, false, col)
		case computingHeight:
			if img.Bounds().Dy() <= p.NewHeight {
				state = done
				continue
			}
			img, err = p.shrink(img, true, col)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "carving failed while %v", state)
		}
	}
	return img, nil
}

// shrink removes a single seam from the image. When vRes is set the image is
// transposed before and after the seam removal, so that a horizontal seam is removed.
func (p *Processor) shrink(img *image.NRGBA, vRes bool, col color.Color) (*image.NRGBA, error) {
	if vRes {
		img = transpose(img)
	}

	c := NewCarver(img.Bounds().Dx(), img.Bounds().Dy())
	if _, err := c.ComputeSeams(img); err != nil {
		return nil, err
	}
	seam := c.FindLowestEnergySeam()

	if p.Preview != nil {
		frame := imaging.Clone(img)
		if err := c.DrawSeam(frame, seam, col); err != nil {
			return nil, err
		}
		if vRes {
			frame = transpose(frame)
		}
		if err := p.Preview.Show(frame); err != nil {
			return nil, errors.Wrap(err, "preview failed")
		}
	}

	img, err := c.RemoveSeam(img, seam)
	if err != nil {
		return nil, err
	}
	if vRes {
		img = transpose(img)
	}
	return img, nil
}

// Process decodes the image read from r, carves it and encodes the result into w.
// We are using the io package, since we can provide different input and output types,
// as long as they implement the io.Reader and io.Writer interface.
func (p *Processor) Process(r io.Reader, w io.Writer) error {
	img, err := Decode(r)
	if err != nil {
		return err
	}
	res, err := p.Carve(img)
	if err != nil {
		return err
	}
	return encodeImg(w, res)
}
