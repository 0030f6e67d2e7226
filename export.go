package axon

import (
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/mattn/go-sixel"
	xdraw "golang.org/x/image/draw"
)

// Export is the JSON shape of a rendered frame: the column count, the
// line count, and the escape-sequence lines themselves.
type Export struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Lines  []string `json:"lines"`
}

// ExportJSON writes the grid's escape lines as JSON, so a rendered
// frame can be replayed later with a plain cat of each line.
func ExportJSON(w io.Writer, grid *CellGrid) error {
	if grid == nil {
		return fmt.Errorf("export: grid is nil")
	}
	lines := grid.Lines()
	enc := json.NewEncoder(w)
	return enc.Encode(Export{
		Width:  grid.Cols,
		Height: len(lines),
		Lines:  lines,
	})
}

// Preview reconstructs the quantized frame as a raster image scaled up
// by an integer factor with nearest-neighbor sampling, preserving the
// blocky 256-color look.
func Preview(grid *CellGrid, scale int) (*image.NRGBA, error) {
	if grid == nil {
		return nil, fmt.Errorf("preview: grid is nil")
	}
	if scale < 1 {
		scale = 1
	}

	base := grid.ToImage()
	if scale == 1 {
		return base, nil
	}

	bounds := base.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), base, bounds, xdraw.Src, nil)
	return out, nil
}

// WritePreviewPNG encodes the scaled preview as PNG.
func WritePreviewPNG(w io.Writer, grid *CellGrid, scale int) error {
	img, err := Preview(grid, scale)
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// WritePreviewSixel encodes the scaled preview as a sixel stream for
// terminals that support inline graphics.
func WritePreviewSixel(w io.Writer, grid *CellGrid, scale int) error {
	img, err := Preview(grid, scale)
	if err != nil {
		return err
	}

	enc := sixel.NewEncoder(w)
	enc.Dither = false // pixels are already palette colors
	return enc.Encode(img)
}
