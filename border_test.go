package axon

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolaroidLayout(t *testing.T) {
	tests := []struct {
		name       string
		srcW, srcH int
	}{
		{name: "square", srcW: 200, srcH: 200},
		{name: "wide", srcW: 400, srcH: 100},
		{name: "tall", srcW: 100, srcH: 400},
		{name: "tiny uses margin floor", srcW: 20, srcH: 20},
		{name: "tall narrow caps side margin", srcW: 10, srcH: 200},
		{name: "sliver", srcW: 2, srcH: 200},
		{name: "extremely wide", srcW: 2000, srcH: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := PolaroidLayout(tt.srcW, tt.srcH)

			// The image region sits inside the canvas with equal side
			// margins and a caption band below at least three times the
			// top margin.
			assert.Equal(t, l.Image.Min.X, l.Canvas.Max.X-l.Image.Max.X)
			assert.Equal(t, tt.srcW, l.Image.Dx())
			assert.Equal(t, tt.srcH, l.Image.Dy())
			assert.GreaterOrEqual(t, l.Image.Min.X, 0)
			assert.GreaterOrEqual(t, l.Image.Min.Y, 8)
			assert.Greater(t, l.Caption.Dy(), 3*l.Image.Min.Y)
			assert.Equal(t, l.Canvas.Max.Y, l.Caption.Max.Y)

			// Framing must make the canvas proportionally taller than
			// the source, so the rendered grid gains rows. This has to
			// hold for every source size, not just sane aspect ratios.
			assert.Greater(t, l.Canvas.Dy()*tt.srcW, l.Canvas.Dx()*tt.srcH)
		})
	}
}

func TestComposePolaroid(t *testing.T) {
	src := uniformImage(100, 100, color.NRGBA{R: 200, G: 30, B: 30, A: 255})
	canvas, layout := ComposePolaroid(src, "")

	require.Equal(t, layout.Canvas, canvas.Bounds())

	white := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	// Frame corners are white.
	assert.Equal(t, white, canvas.NRGBAAt(0, 0))
	assert.Equal(t, white, canvas.NRGBAAt(canvas.Bounds().Max.X-1, 0))
	assert.Equal(t, white, canvas.NRGBAAt(0, canvas.Bounds().Max.Y-1))
	assert.Equal(t, white, canvas.NRGBAAt(canvas.Bounds().Max.X-1, canvas.Bounds().Max.Y-1))

	// The source shows through inside the image region.
	mid := layout.Image.Min.Add(layout.Image.Size().Div(2))
	assert.Equal(t, src.NRGBAAt(50, 50), canvas.NRGBAAt(mid.X, mid.Y))
}

func TestComposePolaroidCaption(t *testing.T) {
	src := uniformImage(120, 80, color.NRGBA{R: 10, G: 10, B: 120, A: 255})
	plain, layout := ComposePolaroid(src, "")
	titled, _ := ComposePolaroid(src, "vacation")

	// Caption text darkens pixels somewhere in the band.
	differs := false
	for y := layout.Caption.Min.Y; y < layout.Caption.Max.Y && !differs; y++ {
		for x := layout.Caption.Min.X; x < layout.Caption.Max.X; x++ {
			if plain.NRGBAAt(x, y) != titled.NRGBAAt(x, y) {
				differs = true
				break
			}
		}
	}
	assert.True(t, differs, "caption left the band untouched")

	// The image region is identical with or without a caption.
	for y := layout.Image.Min.Y; y < layout.Image.Max.Y; y++ {
		for x := layout.Image.Min.X; x < layout.Image.Max.X; x++ {
			require.Equal(t, plain.NRGBAAt(x, y), titled.NRGBAAt(x, y), "pixel (%d,%d)", x, y)
		}
	}
}
