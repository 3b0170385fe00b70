package seamcarve

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"github.com/seamcarve/seamcarve/utils"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Load opens and decodes the image found at path.
// Missing files, content sniffed as something other than an image and
// undecodable content are reported as ErrImageLoad.
func Load(path string) (*image.NRGBA, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "%v", err)
	}
	ctype, err := utils.DetectContentType(path)
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "%v", err)
	}
	// Formats unknown to the sniffer (tiff) are reported as octet-stream.
	if !strings.HasPrefix(ctype, "image/") && ctype != "application/octet-stream" {
		return nil, errors.Wrapf(ErrImageLoad, "%s is not an image: %s", path, ctype)
	}
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "could not decode %s: %v", path, err)
	}
	img := imgToNRGBA(src)
	if img.Bounds().Empty() {
		return nil, errors.Wrapf(ErrImageLoad, "%s has no pixels", path)
	}
	return img, nil
}

// Decode reads an image from r, see Load.
func Decode(r io.Reader) (*image.NRGBA, error) {
	src, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrapf(ErrImageLoad, "could not decode the image: %v", err)
	}
	img := imgToNRGBA(src)
	if img.Bounds().Empty() {
		return nil, errors.Wrap(ErrImageLoad, "the image has no pixels")
	}
	return img, nil
}

// Save encodes the image to path; the format is chosen from the file extension.
func Save(img image.Image, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(100)); err != nil {
		return errors.Wrapf(err, "could not save the image to %s", path)
	}
	return nil
}

// Encode writes the image to w in the requested format.
func Encode(w io.Writer, img image.Image, format imaging.Format) error {
	return imaging.Encode(w, img, format, imaging.JPEGQuality(100))
}

// imgToNRGBA converts any image type to an opaque *image.NRGBA with min-point at (0, 0).
// The result never shares its pixel buffer with src.
func imgToNRGBA(src image.Image) *image.NRGBA {
	dst := imaging.Clone(src)
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	return dst
}

// transpose swaps the rows and the columns of the image.
func transpose(src *image.NRGBA) *image.NRGBA {
	return imaging.Transpose(src)
}

// encodeImg encodes an image to a destination of type io.Writer.
// Named files are encoded according to their extension, anything else as PNG.
func encodeImg(w io.Writer, img *image.NRGBA) error {
	switch w := w.(type) {
	case *os.File:
		if filepath.Ext(w.Name()) == "" {
			return Encode(w, img, imaging.PNG)
		}
		format, err := imaging.FormatFromFilename(w.Name())
		if err != nil {
			return errors.Wrapf(ErrUnsupportedFormat, "%s", w.Name())
		}
		return Encode(w, img, format)
	default:
		return Encode(w, img, imaging.PNG)
	}
}
