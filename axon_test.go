package axon

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluentChain(t *testing.T) {
	img := New(createTestImage(30, 30)).
		Width(12).
		Filter(FilterBicubic).
		Texture(TextureBayer).
		Posterize(PosterizeLight).
		Polaroid(true).
		Caption("hello")

	s := img.CurrentSettings()
	assert.Equal(t, 12, s.Width)
	assert.Equal(t, FilterBicubic, s.Filter)
	assert.Equal(t, TextureBayer, s.Texture)
	assert.Equal(t, PosterizeLight, s.Posterize)
	assert.True(t, s.Polaroid)
	assert.Equal(t, "hello", s.Caption)

	out, err := img.Render()
	require.NoError(t, err)
	assert.Contains(t, out, "\x1b[38;5;")
	assert.Contains(t, out, string(halfBlock))
}

func TestNewNil(t *testing.T) {
	assert.Nil(t, New(nil))
	assert.Nil(t, From(nil))
}

func TestOpenEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestOpenAndRenderFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, createTestImage(24, 24)))
	require.NoError(t, f.Close())

	img, err := Open(path)
	require.NoError(t, err)

	grid, err := img.Width(8).Cells()
	require.NoError(t, err)
	assert.Equal(t, 8, grid.Cols)

	// The decoded source is cached; a second render reuses it.
	src, err := img.Source()
	require.NoError(t, err)
	assert.Equal(t, 24, src.Bounds().Dx())
}

func TestCaptionChangeRerendersFromFile(t *testing.T) {
	// File-backed renders go through the tagged resample cache; a
	// caption edit on the same file must produce the new frame, not
	// the cached one.
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, createTestImage(24, 24)))
	require.NoError(t, f.Close())

	img, err := Open(path)
	require.NoError(t, err)
	img.Width(24).Filter(FilterNearest).Polaroid(true)

	g1, err := img.Caption("WWW").Cells()
	require.NoError(t, err)
	g2, err := img.Caption("iii").Cells()
	require.NoError(t, err)
	assert.NotEqual(t, g1.Cells, g2.Cells)

	src, err := img.Source()
	require.NoError(t, err)
	pure, err := RenderCells(src, img.CurrentSettings())
	require.NoError(t, err)
	assert.Equal(t, pure.Cells, g2.Cells)

	ClearResampleCache()
}

func TestOpenBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not a png"), 0o644))

	img, err := Open(path)
	require.NoError(t, err)

	_, err = img.Cells()
	var derr *DecodeError
	assert.ErrorAs(t, err, &derr)
}

func TestFromReader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, createTestImage(16, 16)))

	out, err := From(&buf).Width(6).Render()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(out, "\x1b[0m"))
}

func TestRenderHelpers(t *testing.T) {
	out, err := Render(createTestImage(20, 20))
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	_, err = Render(nil)
	assert.Error(t, err)

	_, err = RenderFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestSettingsSnapshotReplace(t *testing.T) {
	img := New(createTestImage(10, 10)).Width(4)
	img.Settings(Settings{Width: 2, Filter: FilterNearest})
	assert.Equal(t, 2, img.CurrentSettings().Width)
}
