package seamcarve

import (
	"image"
	"os"
	"sync/atomic"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/utils"
	"golang.org/x/term"
)

// PipeName is the file name that indicates stdin/stdout is being used.
const PipeName = "-"

// Ops holds the source and destination of a carving operation.
// Src can be a local file, an http(s) URL or PipeName; Dst a local file or PipeName.
type Ops struct {
	Src, Dst string

	writing atomic.Bool
}

// Writing reports whether Execute has started writing the destination file.
// Until then Dst may be a file this run does not own.
func (op *Ops) Writing() bool {
	return op.writing.Load()
}

// Load resolves the source and decodes the image it points to.
func (op *Ops) Load() (*image.NRGBA, error) {
	switch {
	case op.Src == PipeName:
		if term.IsTerminal(int(os.Stdin.Fd())) {
			return nil, errors.Wrap(ErrImageLoad, "`-` should be used with a pipe for stdin")
		}
		return Decode(os.Stdin)
	case utils.IsValidUrl(op.Src):
		src, err := utils.DownloadImage(op.Src)
		if src != nil {
			defer func() {
				src.Close()
				os.Remove(src.Name())
			}()
		}
		if err != nil {
			return nil, errors.Wrapf(ErrImageLoad, "%v", err)
		}
		return Load(src.Name())
	default:
		return Load(op.Src)
	}
}

// Execute carves the image with the processor and writes the result to the destination.
// In case of an error no output file is left behind.
func (op *Ops) Execute(p *Processor, img *image.NRGBA) error {
	if op.Dst != PipeName {
		if _, err := imaging.FormatFromFilename(op.Dst); err != nil {
			return errors.Wrapf(ErrUnsupportedFormat, "%s", op.Dst)
		}
	}
	res, err := p.Carve(img)
	if err != nil {
		return err
	}

	if op.Dst == PipeName {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("`-` should be used with a pipe for stdout")
		}
		return encodeImg(os.Stdout, res)
	}

	op.writing.Store(true)
	if err := Save(res, op.Dst); err != nil {
		// remove the generated image file in case of an error
		os.Remove(op.Dst)
		return err
	}
	return nil
}
