package axon

import "image"

// Quantizer maps continuous-tone pixels onto a single palette. It
// holds no state beyond the palette binding, so one instance may serve
// any number of render passes against the same table.
type Quantizer struct {
	palette *Palette
}

// NewQuantizer binds a quantizer to a palette. The palette's
// acceleration structures are built lazily on first lookup and live
// with the palette, so rebinding to another palette never leaves stale
// indices behind.
func NewQuantizer(p *Palette) *Quantizer {
	return &Quantizer{palette: p}
}

// Index returns the palette index nearest to the given channels.
func (q *Quantizer) Index(r, g, b uint8) uint8 {
	return q.palette.NearestIndex(r, g, b)
}

// QuantizeImage maps every pixel of img to a palette index, returned
// in row-major order alongside the grid width.
func (q *Quantizer) QuantizeImage(img *image.NRGBA) []uint8 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	indices := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4]
			indices[y*w+x] = q.palette.NearestIndex(px[0], px[1], px[2])
		}
	}
	return indices
}
