package seamcarve

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder is a Previewer keeping every received frame.
type recorder struct {
	frames []*image.NRGBA
}

func (r *recorder) Show(img *image.NRGBA) error {
	r.frames = append(r.frames, img)
	return nil
}

func TestResize_UniformImageKeepsItsColor(t *testing.T) {
	col := color.NRGBA{R: 0x2a, G: 0x80, B: 0xc0, A: 0xff}
	img := imaging.New(imgWidth, imgHeight, col)

	p := &Processor{NewWidth: 8, NewHeight: imgHeight}
	res, err := p.Carve(img)
	require.NoError(t, err)

	assert.Equal(t, 8, res.Bounds().Dx())
	assert.Equal(t, imgHeight, res.Bounds().Dy())
	for y := 0; y < res.Bounds().Dy(); y++ {
		for x := 0; x < res.Bounds().Dx(); x++ {
			assert.Equal(t, col, res.NRGBAAt(x, y))
		}
	}
}

func TestResize_ShrinkImageWidthAndHeight(t *testing.T) {
	img := randomImage(imgWidth, imgHeight, 7)

	p := &Processor{NewWidth: imgWidth / 2, NewHeight: imgHeight - 3}
	res, err := p.Carve(img)
	require.NoError(t, err)

	assert.Equal(t, imgWidth/2, res.Bounds().Dx())
	assert.Equal(t, imgHeight-3, res.Bounds().Dy())
	assert.Equal(t, image.Point{}, res.Bounds().Min)
}

func TestResize_ShrinkImageHeightOnly(t *testing.T) {
	// Width has to shrink by at least one column, the height does the rest.
	img := randomImage(imgWidth, imgHeight, 8)

	p := &Processor{NewWidth: imgWidth - 1, NewHeight: 2}
	res, err := p.Carve(img)
	require.NoError(t, err)

	assert.Equal(t, imgWidth-1, res.Bounds().Dx())
	assert.Equal(t, 2, res.Bounds().Dy())
}

func TestResize_Checkerboard(t *testing.T) {
	// 4x4 board of 2x2 cells. Every pixel has the highest possible energy,
	// so each seam is the leftmost straight one.
	img := imaging.New(4, 4, color.Black)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if (x/2+y/2)%2 == 1 {
				img.Set(x, y, color.White)
			}
		}
	}
	uniform := ComputeEnergy(imaging.New(4, 4, color.Black))
	energy := ComputeEnergy(img)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint32(624), energy.At(x, y))
			assert.Greater(t, energy.At(x, y), uniform.At(x, y))
		}
	}

	rec := &recorder{}
	p := &Processor{NewWidth: 2, NewHeight: 4, Preview: rec}
	res, err := p.Carve(img)
	require.NoError(t, err)
	require.Len(t, rec.frames, 2)

	red := color.NRGBA{R: 0xff, A: 0xff}
	for _, frame := range rec.frames {
		for y := 0; y < 4; y++ {
			assert.Equal(t, red, frame.NRGBAAt(0, y))
		}
	}
	assert.Equal(t, image.Rect(0, 0, 2, 4), res.Bounds())
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			assert.Equal(t, img.NRGBAAt(x+2, y), res.NRGBAAt(x, y))
		}
	}
}

// Checkerboard next to a gray half: the seams go through the gray columns.
func TestResize_SeamsGoThroughUniformRegion(t *testing.T) {
	img := checkerImage()

	p := &Processor{NewWidth: 6, NewHeight: 4}
	res, err := p.Carve(img)
	require.NoError(t, err)
	require.Equal(t, 6, res.Bounds().Dx())

	gray := color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	for y := 0; y < 4; y++ {
		assert.Equal(t, gray, res.NRGBAAt(0, y))
		assert.Equal(t, gray, res.NRGBAAt(1, y))
		// The checkerboard is left intact.
		for x := 2; x < 6; x++ {
			assert.Equal(t, img.NRGBAAt(x+2, y), res.NRGBAAt(x, y))
		}
	}
}

func TestResize_InvalidTargetDimensions(t *testing.T) {
	img := randomImage(50, 100, 9)
	orig := imaging.Clone(img)

	testCases := []struct {
		name          string
		width, height int
	}{
		{"same size", 50, 100},
		{"width not smaller", 50, 80},
		{"width larger", 60, 80},
		{"height larger", 40, 101},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := &recorder{}
			p := &Processor{NewWidth: tc.width, NewHeight: tc.height, Preview: rec}

			res, err := p.Carve(img)
			assert.ErrorIs(t, err, ErrInvalidTargetDimensions)
			assert.Nil(t, res)
			assert.Empty(t, rec.frames)
		})
	}
	assert.Equal(t, orig.Pix, img.Pix)
}

func TestResize_DegenerateGeometry(t *testing.T) {
	img := randomImage(imgWidth, imgHeight, 10)

	for _, p := range []*Processor{
		{NewWidth: 1, NewHeight: imgHeight},
		{NewWidth: 0, NewHeight: imgHeight},
		{NewWidth: -3, NewHeight: imgHeight},
		{NewWidth: 5, NewHeight: 1},
		{NewWidth: 5, NewHeight: 0},
	} {
		_, err := p.Carve(img)
		assert.ErrorIs(t, err, ErrDegenerateGeometry, "%dx%d", p.NewWidth, p.NewHeight)
	}
}

func TestResize_InvalidSeamColor(t *testing.T) {
	img := randomImage(imgWidth, imgHeight, 11)

	p := &Processor{NewWidth: 5, NewHeight: 5, SeamColor: "#xyz"}
	_, err := p.Carve(img)
	assert.Error(t, err)
}

func TestResize_IsDeterministic(t *testing.T) {
	img := randomImage(12, 9, 12)
	orig := imaging.Clone(img)

	p := &Processor{NewWidth: 9, NewHeight: 7}
	first, err := p.Carve(img)
	require.NoError(t, err)
	second, err := p.Carve(img)
	require.NoError(t, err)

	assert.Equal(t, first.Pix, second.Pix)
	assert.Equal(t, orig.Pix, img.Pix, "the source image should not be modified")

	// Carving one column at a time gives the same result as carving two at once.
	p1 := &Processor{NewWidth: 11, NewHeight: 9}
	step, err := p1.Carve(img)
	require.NoError(t, err)
	p2 := &Processor{NewWidth: 10, NewHeight: 9}
	step, err = p2.Carve(step)
	require.NoError(t, err)

	direct, err := p2.Carve(img)
	require.NoError(t, err)
	assert.Equal(t, direct.Pix, step.Pix)
}

func TestResize_Preview(t *testing.T) {
	img := randomImage(imgWidth, imgHeight, 13)
	red := color.NRGBA{R: 0xff, A: 0xff}

	rec := &recorder{}
	p := &Processor{NewWidth: 7, NewHeight: 8, Preview: rec}
	res, err := p.Carve(img)
	require.NoError(t, err)

	require.Len(t, rec.frames, 3+2)

	// The seam overlay never leaks into the carved image.
	for y := 0; y < res.Bounds().Dy(); y++ {
		assert.Zero(t, countInRow(res, y, red), "row %d", y)
	}

	// Vertical seams: the frames get narrower, every row holds a seam pixel.
	for i, frame := range rec.frames[:3] {
		assert.Equal(t, imgWidth-i, frame.Bounds().Dx())
		assert.Equal(t, imgHeight, frame.Bounds().Dy())
		for y := 0; y < frame.Bounds().Dy(); y++ {
			assert.Equal(t, 1, countInRow(frame, y, red), "frame %d row %d", i, y)
		}
	}
	// Horizontal seams: the frames are shown in the original orientation,
	// every column holds a seam pixel.
	for i, frame := range rec.frames[3:] {
		assert.Equal(t, 7, frame.Bounds().Dx())
		assert.Equal(t, imgHeight-i, frame.Bounds().Dy())
		for x := 0; x < frame.Bounds().Dx(); x++ {
			assert.Equal(t, 1, countInRow(imaging.Transpose(frame), x, red), "frame %d column %d", i, x)
		}
	}
}

func countInRow(img *image.NRGBA, y int, col color.NRGBA) int {
	var n int
	for x := 0; x < img.Bounds().Dx(); x++ {
		if img.NRGBAAt(x, y) == col {
			n++
		}
	}
	return n
}

func TestResize_Process(t *testing.T) {
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, randomImage(imgWidth, imgHeight, 14)))

	var out bytes.Buffer
	p := &Processor{NewWidth: 6, NewHeight: 6}
	require.NoError(t, p.Process(&in, &out))

	res, err := png.Decode(&out)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 6, 6), res.Bounds())
}

func TestResize_ProcessInvalidInput(t *testing.T) {
	var out bytes.Buffer
	p := &Processor{NewWidth: 6, NewHeight: 6}

	err := p.Process(bytes.NewBufferString("not an image"), &out)
	assert.ErrorIs(t, err, ErrImageLoad)
	assert.Zero(t, out.Len())
}
