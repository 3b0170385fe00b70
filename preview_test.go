package seamcarve

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreview_Nop(t *testing.T) {
	var p Previewer = NopPreviewer{}
	assert.NoError(t, p.Show(randomImage(2, 2, 40)))
}

func TestPreview_Frames(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "frames")
	fp, err := NewFramePreviewer(dir)
	require.NoError(t, err)

	p := &Processor{NewWidth: 8, NewHeight: 9, Preview: fp}
	_, err = p.Carve(randomImage(imgWidth, imgHeight, 41))
	require.NoError(t, err)

	assert.Equal(t, 3, fp.Frames())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	first, err := Load(filepath.Join(dir, "frame_00001.png"))
	require.NoError(t, err)
	assert.Equal(t, imgWidth, first.Bounds().Dx())

	last, err := Load(filepath.Join(dir, "frame_00003.png"))
	require.NoError(t, err)
	assert.Equal(t, 8, last.Bounds().Dx())
	assert.Equal(t, imgHeight, last.Bounds().Dy())
}
