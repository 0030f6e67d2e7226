package axon

import (
	"fmt"
	"image"
)

// RenderCells runs the full pipeline: border composition, resampling
// to the terminal grid, posterization, dithering, quantization, and
// half-block packing. It is a pure function of (src, settings) — no
// state survives between calls, so a settings change simply calls it
// again with a new snapshot and the previous result is discarded.
func RenderCells(src image.Image, s Settings) (*CellGrid, error) {
	return renderCells(src, s, "")
}

// renderCells is RenderCells with a cache tag; a non-empty tag lets
// repeated renders of the same source reuse resample results.
func renderCells(src image.Image, s Settings, tag string) (*CellGrid, error) {
	if src == nil {
		return nil, &DecodeError{Err: errNilSource}
	}
	if err := s.validate(); err != nil {
		return nil, err
	}

	canvas := image.Image(src)
	if s.Polaroid {
		canvas, _ = ComposePolaroid(src, s.Caption)
		// The composed canvas depends on the caption, so the cache key
		// has to as well; the bounds alone don't change with the text.
		if tag != "" {
			tag = fmt.Sprintf("%s|polaroid|%s", tag, s.Caption)
		}
	}

	cols, pixelRows := gridSize(canvas, s)

	resampled, err := resampleCached(canvas, cols, pixelRows, s.Filter, tag)
	if err != nil {
		return nil, err
	}

	posterized := PosterizeImage(resampled, s.Posterize)

	pal := s.palette()
	dithered, err := DitherImage(posterized, pal, s.Texture)
	if err != nil {
		return nil, err
	}

	indices := NewQuantizer(pal).QuantizeImage(dithered)
	return PackCells(indices, cols, pixelRows, pal)
}

// gridSize resolves the target pixel grid for a canvas under the given
// settings. Columns map one-to-one to pixels; pixel rows are double
// the terminal rows because two stacked pixels share a cell. Derived
// row counts follow the canvas aspect ratio, and an odd result is
// padded up one row so packing always sees an even height.
func gridSize(canvas image.Image, s Settings) (cols, pixelRows int) {
	cols = s.Width
	if cols <= 0 {
		cols = AutoColumns()
	}
	if cols < 1 {
		cols = 1
	}

	if s.Rows > 0 {
		pixelRows = 2 * s.Rows
		return cols, pixelRows
	}

	bounds := canvas.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return cols, 2
	}

	pixelRows = (cols*h + w/2) / w
	if pixelRows < 2 {
		pixelRows = 2
	}
	if pixelRows%2 != 0 {
		pixelRows++
	}
	return cols, pixelRows
}
