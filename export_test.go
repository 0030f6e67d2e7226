package axon

import (
	"bytes"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportJSON(t *testing.T) {
	grid, err := RenderCells(createTestImage(40, 40), Settings{Width: 8})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, grid))

	var ex Export
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ex))
	assert.Equal(t, grid.Cols, ex.Width)
	assert.Equal(t, grid.Rows, ex.Height)
	require.Len(t, ex.Lines, grid.Rows)
	for _, line := range ex.Lines {
		assert.True(t, strings.HasSuffix(line, "\x1b[0m"))
	}
}

func TestPreviewScale(t *testing.T) {
	grid, err := RenderCells(createTestImage(32, 32), Settings{Width: 8})
	require.NoError(t, err)

	img, err := Preview(grid, 4)
	require.NoError(t, err)
	assert.Equal(t, grid.Cols*4, img.Bounds().Dx())
	assert.Equal(t, grid.Rows*2*4, img.Bounds().Dy())

	// Scale is clamped to 1, never an error.
	base, err := Preview(grid, 0)
	require.NoError(t, err)
	assert.Equal(t, grid.Cols, base.Bounds().Dx())
	assert.Equal(t, grid.Rows*2, base.Bounds().Dy())
}

func TestWritePreviewPNG(t *testing.T) {
	grid, err := RenderCells(createTestImage(32, 32), Settings{Width: 8})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePreviewPNG(&buf, grid, 2))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, grid.Cols*2, img.Bounds().Dx())
	assert.Equal(t, grid.Rows*2*2, img.Bounds().Dy())
}

func TestWritePreviewSixel(t *testing.T) {
	grid, err := RenderCells(createTestImage(16, 16), Settings{Width: 4})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WritePreviewSixel(&buf, grid, 2))
	assert.NotZero(t, buf.Len())
	// Sixel streams open with DCS and close with ST.
	assert.Contains(t, buf.String(), "\x1bP")
	assert.Contains(t, buf.String(), "\x1b\\")
}
