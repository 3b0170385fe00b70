package seamcarve

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
)

// Previewer receives the image with the seam about to be removed drawn on it,
// once for every carving step.
type Previewer interface {
	Show(img *image.NRGBA) error
}

// NopPreviewer discards every frame. It is used when no preview is requested.
type NopPreviewer struct{}

// Show implements the Previewer interface.
func (NopPreviewer) Show(*image.NRGBA) error { return nil }

// FramePreviewer saves each preview frame as a numbered PNG file into Dir,
// which makes it possible to watch the carving process without a display.
type FramePreviewer struct {
	Dir    string
	frames int
}

// NewFramePreviewer creates the frames directory, if it does not exist yet.
func NewFramePreviewer(dir string) (*FramePreviewer, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("unable to create the preview directory: %w", err)
	}
	return &FramePreviewer{Dir: dir}, nil
}

// Show implements the Previewer interface.
func (fp *FramePreviewer) Show(img *image.NRGBA) error {
	fp.frames++
	return Save(img, filepath.Join(fp.Dir, fmt.Sprintf("frame_%05d.png", fp.frames)))
}

// Frames returns the number of frames written so far.
func (fp *FramePreviewer) Frames() int {
	return fp.frames
}
