package seamcarve

import "github.com/pkg/errors"

var (
	// ErrImageLoad is returned when the source does not resolve to a decodable image.
	ErrImageLoad = errors.New("unable to load the source image")

	// ErrInvalidTargetDimensions is returned when the requested width is not smaller than
	// the image width or the requested height exceeds the image height.
	// No carving is attempted in this case.
	ErrInvalidTargetDimensions = errors.New("target dimensions must be smaller than the original image dimensions")

	// ErrDegenerateGeometry is returned when the requested width or height is below two pixels.
	ErrDegenerateGeometry = errors.New("target dimensions must be at least 2x2 pixels")

	// ErrUnsupportedFormat is returned when the output format can't be derived from the file name.
	ErrUnsupportedFormat = errors.New("unsupported image format")
)
